// Package requestid correlates log records of one HTTP request.
//
// Middleware assigns every request an ID, taken from a well-formed
// X-Request-ID header or generated as a UUID, and echoes it back. Handlers
// read it with FromContext; loggers built with
// logger.WithContextExtractors(requestid.LoggerExtractor()) add it to every
// record logged with the request context.
package requestid
