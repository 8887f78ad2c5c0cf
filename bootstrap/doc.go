// Package bootstrap runs a service through configure, start, ready and
// shutdown phases around a component registry.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
//	    return a.RegisterComponent(server.NewComponent(srv, api))
//	})
//	return app.Run(ctx)
//
// Components are started in registration order and stopped in reverse on
// SIGINT/SIGTERM. After startup a summary of the registered infrastructure,
// HTTP routes and live health is printed.
package bootstrap
