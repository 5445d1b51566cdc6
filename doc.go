// Package mapper provides a PostgreSQL data mapper with eager loading of
// associations.
//
// # Overview
//
// Package mapper maps rows of PostgreSQL tables to maps keyed by column
// name. Columns are not declared in Go: the column list of each table is
// loaded once from information_schema.columns and cached. On top of that,
// a Model offers truncate, create, find, findOne, update and destroy, and
// resolves declared relations of the found rows concurrently.
//
// # Basic Usage
//
//	conn := pgx.MustOpen("postgres://localhost:5432/mydb?sslmode=disable")
//	users := mapper.NewModelTable("users", conn, logger.StandardLogger)
//
//	// INSERT INTO users (name, email) VALUES ($1, $2) RETURNING *
//	user, err := users.Create(ctx, mapper.Row{"name": "Alice", "email": "alice@example.com"})
//
//	// SELECT id, name, email FROM users WHERE id = $1
//	result, err := users.Find(ctx, mapper.Key(user["id"]), nil)
//
//	// UPDATE users SET name = $1 WHERE id = $2
//	n, err := users.Update(ctx, mapper.Key(user["id"]), mapper.Row{"name": "Bob"})
//
//	// DELETE FROM users WHERE id = $1
//	n, err = users.Destroy(ctx, mapper.Key(user["id"]))
//
// # Selectors and Result Shapes
//
// Rows are selected with one of three selectors. The selector decides the
// shape of the result, even when no row matches:
//
//	users.Find(ctx, mapper.Keys(1, 2, 3), nil)  // []Row, possibly empty
//	users.Find(ctx, mapper.Key(1), nil)         // Row or nil
//	users.Find(ctx, mapper.Where(mapper.Filter{"active": true}), nil) // []Row
//	users.FindOne(ctx, mapper.Where(mapper.Filter{"active": true}), nil) // Row or nil
//
// Filter keys may carry an operator suffix: eq, ne, gt, gte, lt, lte, like,
// ilike, in, nin and null.
//
//	mapper.Filter{"name.ilike": "a%", "id.in": []int{1, 2}, "deleted_at.null": true}
//
// # Relations
//
// Relations are declared on the owning model:
//
//	users.HasMany("posts", posts, "user_id")
//	users.BelongsTo("company", companies, "company_id")
//	posts.HasOne("cover", images, "cover_id")
//	posts.HasManyThrough("tags", tags, postTags)
//	postTags.ForeignKey("post_id", posts).ForeignKey("tag_id", tags)
//
// and included when finding:
//
//	users.Find(ctx, mapper.Keys(1, 2), &mapper.FindOptions{
//		Include: mapper.Includes{
//			"posts": {
//				Where:   mapper.Filter{"published": true},
//				OrderBy: []string{"id DESC"},
//				Include: mapper.ParseIncludes("tags", "cover"),
//			},
//		},
//	})
//
// Every included relation of every row is fetched concurrently. If any
// fetch fails, the whole call fails with a *ResolutionError and no row is
// changed. Use ConcurrencyLimit to cap the number of concurrent fetches.
//
// # Decoding
//
// Results and rows decode into structs:
//
//	type Post struct {
//		Id     int
//		UserId int
//		Tags   []Tag
//	}
//	var posts []Post
//	err := result.Decode(&posts)
//
// # Mass Assignment
//
// Permit and PermitAllExcept keep only allowed columns of user input, which
// may be a Row, a map, JSON or a struct:
//
//	record := users.Permit("name", "email").Filter(requestBody)
//	user, err := users.Create(ctx, record)
//
// # Database Drivers
//
// Package mapper supports PostgreSQL drivers through the db.DB interface:
//   - github.com/lib/pq via github.com/gopsql/pq
//   - github.com/jackc/pgx via github.com/gopsql/pgx
//   - database/sql via github.com/gopsql/standard
//
// Any other Client implementation can be set with SetClient().
//
// The mapper command (cmd/mapper) declares models from a YAML file and
// runs these operations from the command line.
package mapper
