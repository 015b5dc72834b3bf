// Package middleware groups the Fiber middleware shared by every feature.
//
//   - auth: rejects requests without the configured API key (X-API-Key or
//     "Authorization: Bearer"). With no key configured every request passes.
//   - rayid: assigns each request a ray id, reusing an incoming X-Ray-ID, and
//     echoes it in the response so log lines can be matched to a call.
//
// Register rayid first, then logger.Requests, then auth; the swagger route is
// mounted before auth and stays public.
package middleware
