package validation

import (
	"errors"
	"testing"

	"github.com/raywall/storefront/models"
	"github.com/raywall/storefront/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae), "expected *apperr.Error, got %T", err)
	require.Equal(t, apperr.KindValidation, ae.Kind)
	out := make(map[string]string, len(ae.Issues))
	for _, is := range ae.Issues {
		out[is.Field] = is.Message
	}
	return out
}

func TestParse_Product(t *testing.T) {
	in, err := Parse[models.ProductInput]([]byte(`{"name":"Widget","price":9.99,"amountInStock":5}`))
	require.NoError(t, err)

	p := in.Product()
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, 9.99, p.Price)
	assert.Equal(t, 5, p.AmountInStock)
}

func TestParse_ProductFieldIssues(t *testing.T) {
	t.Run("missing and negative fields", func(t *testing.T) {
		_, err := Parse[models.ProductInput]([]byte(`{"price":-1}`))
		fields := issueFields(t, err)

		assert.Equal(t, "is required", fields["name"])
		assert.Equal(t, "must be greater than or equal to 0", fields["price"])
		assert.Equal(t, "is required", fields["amountInStock"])
	})

	t.Run("non integer stock", func(t *testing.T) {
		_, err := Parse[models.ProductInput]([]byte(`{"name":"A","price":1,"amountInStock":2.5}`))
		fields := issueFields(t, err)

		assert.Equal(t, "must be an integer", fields["amountInStock"])
		assert.Len(t, fields, 1)
	})

	t.Run("blank name and oversized stock", func(t *testing.T) {
		_, err := Parse[models.ProductInput]([]byte(`{"name":"   ","price":1,"amountInStock":9007199254740993}`))
		fields := issueFields(t, err)

		assert.Equal(t, "must not be blank", fields["name"])
		assert.Equal(t, "must be less than or equal to 9007199254740992", fields["amountInStock"])
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := Parse[models.ProductInput]([]byte(`{"name":"A","price":1,"amountInStock":2,"imageUrl":"not a url"}`))
		fields := issueFields(t, err)

		assert.Equal(t, "must be a valid URL", fields["imageUrl"])
	})
}

func TestParse_BlankUserName(t *testing.T) {
	_, err := Parse[models.UserInput]([]byte(`{"userName":"   "}`))
	fields := issueFields(t, err)
	assert.Equal(t, "must not be blank", fields["userName"])
}

func TestParse_MalformedBody(t *testing.T) {
	_, err := Parse[models.UserInput]([]byte(`{"userName":`))
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = Parse[models.UserInput](nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestSafeParse(t *testing.T) {
	ok := SafeParse[models.CartItemInput]([]byte(`{"productId":"p1","amount":2}`))
	require.True(t, ok.OK)
	assert.Equal(t, 2, *ok.Value.Amount)

	bad := SafeParse[models.CartItemInput]([]byte(`{"productId":"p1","amount":0}`))
	assert.False(t, bad.OK)
	assert.Nil(t, bad.Value)
	require.Len(t, bad.Issues, 1)
	assert.Equal(t, "amount", bad.Issues[0].Field)
}

func TestCheck_StoredRecords(t *testing.T) {
	assert.NoError(t, Check(&models.User{UserID: "u1", UserName: "Ana"}))

	fields := issueFields(t, Check(&models.User{UserID: "u1"}))
	assert.Equal(t, "is required", fields["userName"])

	fields = issueFields(t, Check(&models.CartItem{CartID: "c1", ProductID: "p1", Amount: 0}))
	assert.Contains(t, fields, "amount")

	assert.NoError(t, Check(&models.Product{ProductID: "p1", Name: "A", Price: 0, AmountInStock: 0}))
}
