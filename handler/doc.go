// Package handler contains the HTTP handlers of the checkout service.
//
//   - CheckoutHandler: payment methods, redirects and callbacks of a project
//   - ProjectHandler: CRUD of the Paysera projects kept in SQLite
//   - LogsHandler: call records stored in OpenSearch
//   - HealthHandler: liveness of the service and its dependencies
//
// Handlers answer with the JSON envelope of the response package, except the
// provider callback endpoint which answers a plain "OK".
package handler
