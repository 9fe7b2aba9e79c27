// Package ssmenv loads configuration from AWS Systems Manager Parameter Store
// into environment variables, or any other Scope.
//
// Fetching
//
// Parameters are read either by path or by name prefix:
//
//   ssmenv.Load(ctx, ssmenv.WithPath("/myapp/prod"), ssmenv.WithRecursive(true))
//   ssmenv.Load(ctx, ssmenv.WithBeginsWith("myapp.prod."))
//
// Reading by path uses GetParametersByPath and needs the
// ssm:GetParametersByPath permission. Reading by prefix uses
// DescribeParameters followed by GetParameters and needs both permissions.
// SecureString values are decrypted unless WithDecryption(false) is passed.
//
// Naming
//
// By default the key is the last segment of the parameter name, so
// /myapp/prod/DB_PASSWORD is stored as DB_PASSWORD. The snake case strategy
// strips a prefix and joins the remaining segments:
//
//   ssmenv.Load(ctx,
//       ssmenv.WithPath("/myapp/prod"),
//       ssmenv.WithNamingMode(ssmenv.NamingSnakeCase),
//   )
//
// stores /myapp/prod/db/password as DB_PASSWORD. The prefix defaults to the
// path or begins_with value and can be set with WithRemovedPrefix.
//
// Overwriting
//
// Load keeps values that are already set. Overload replaces them.
//
// Scopes
//
// Values are written to the process environment unless another Scope is
// given with WithScope. MapScope keeps values in memory, DotenvScope writes a
// .env file and StructScope fills a tagged struct.
//
// Config
//
// Every option is also available as a key in Config, which is how the
// factories (NewFetcher, NewNamingStrategy, NewParameterSetter, NewLoader)
// are configured:
//
//   l, err := ssmenv.NewLoader(ctx, ssmenv.Config{
//       "path":      "/myapp/prod",
//       "naming":    "snakecase",
//       "overwrite": "true",
//   })
//
// https://docs.aws.amazon.com/systems-manager/latest/userguide/systems-manager-parameter-store.html
package ssmenv
