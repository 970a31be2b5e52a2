// Package environment names the deployment stage read from APP_ENV.
//
// Parse accepts the full names and the short aliases (dev, prod, stage,
// testing). The stage picks logger presets, the .env.<stage> file loaded by
// the config package, and, through DatabaseName, a separate "-test" database
// for test runs:
//
//	env, err := environment.Parse(os.Getenv("APP_ENV"))
//	if err != nil {
//		return err
//	}
//	mongoCfg.Database = env.DatabaseName(mongoCfg.Database)
package environment
