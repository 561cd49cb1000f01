/*
Package easyrepo provides the generic Service-Repository pair every storefront
entity goes through.

An EasyService[T] owns one entity type of the single table. It delivers:
  - validation of items (validator/v10 tags) before any backend call;
  - conditional creation, where a taken key becomes apperr.Conflict;
  - partial updates synthesized by package update and returned as stored;
  - guarded deletes, where a missing key becomes apperr.NotFound;
  - defensive reads: a malformed record fetched by key is apperr.DataIntegrity,
    and malformed records met during a scan or query are logged, counted and
    skipped.

Example:

	users := easyrepo.NewService[models.User](table, keys.User)
	users.RegisterCreateHook(func(ctx context.Context, u *models.User) error {
		if u.UserID == "" {
			u.UserID = uuid.NewString()
		}
		return nil
	})

	err := users.Create(ctx, &models.User{UserName: "Ana"})
	user, err := users.Update(ctx, keys.UserKey(id), map[string]any{"userName": "Bia"})
*/
package easyrepo
