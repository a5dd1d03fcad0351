// atlas: a client for the [Atlas API].
//
// A request is a query string plus a set of filters (dates, languages,
// geography, demographics, sampling...). Every endpoint is queried with a
// GET carrying the same filters, and answers with an envelope:
//
//	{"status": "OK", "output": {...}, "query_meta": {...}}
//
// Instructions:
//
//  1. Set the API key once, with [SetKey] or [LoadKeyFromEnv].
//
//  2. Construct a builder with [NewRequestBuilder] and set the filters
//     through setters. (".Set[...](...)")
//
//  3. Build the request: [RequestBuilder.Build].
//     The package will validate the ranges it knows about, reducing bad API calls.
//
//  4. Call an endpoint accessor, e.g. [Request.Volume], [Request.Sentiment],
//     returning the envelope's output as a [Value].
//
//     - [Request.Run] returns the whole envelope as a [Node].
//
//     - [Request.Fetch] returns the decoded JSON, cached per endpoint.
//
// Strings of 9 to 21 characters in response objects are parsed as dates
// when they look like one (see [DetectDate]). Short numeric strings may be
// read as dates too; check [Value.Kind] when that matters.
//
// [Atlas API]: https://atlas.infegy.com
package atlas
