// Package alert emails administrators when the service hits a critical
// fault, such as the document store becoming unreachable.
//
// A Notifier renders an Incident with a templ component and hands it to an
// email.Sender on a background goroutine, so request handling never
// waits on mail delivery. Alerts are throttled per component: after one
// alert for "mongodb", further incidents for that component are dropped
// until Config.Cooldown has passed.
//
//	n := alert.New(sender, cfg, alert.WithLogger(log), alert.WithOrigin(host, port))
//	n.Notify(ctx, alert.Incident{
//	    Reason:    "Database Connection Failure",
//	    ErrorCode: "DB_CONN_FAILURE",
//	    Component: "mongodb",
//	    Path:      r.URL.Path,
//	})
//	defer n.Wait()
//
// A Notifier built with an empty Config.AdminEmail is disabled and Notify
// returns false without doing anything.
package alert
