package atlas

// Used when the server gives no status_message.
var httpStatusMap = map[int]string{
	400: "Bad Request. \n" +
		"Malformed parameter or query syntax.",
	401: "Unauthorized. Invalid API Key",
	403: "Forbidden. The API key has no access to this endpoint or data set",
	404: "Invalid URL. Unknown endpoint",
	405: "Invalid HTTP method",
	429: "Rate limit exceeded.\n" +
		"Too many requests for this API key, slow down",
	500: "Internal Server Error",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout. The query took too long, narrow the date range or sample",
}
