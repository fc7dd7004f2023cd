// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//   - rayid: assigns every request a ray id, stored in the context and echoed in the
//     X-Ray-ID response header for log correlation.
package middleware
