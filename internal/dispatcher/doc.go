// Package dispatcher implements the log-shipping core: it turns one log
// record into an HTTP request (endpoint resolution, header and auth
// assembly, body merge) and hands it to the delivery layer without
// blocking the caller. Delivery is best-effort and fire-and-forget:
// outcomes are swallowed at this boundary and observable only through
// optional hooks and the recent-failures recorder, so a failed delivery
// can never crash or block the host application's logging path.
package dispatcher
