package atlas

import (
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RequestBuilder struct {
	query  string
	params map[string]any
	client *http.Client
	logger *slog.Logger
}

// Usage:
//
//	builder := NewRequestBuilder("coffee OR tea")
func NewRequestBuilder(query string) *RequestBuilder {
	return &RequestBuilder{
		query:  query,
		params: map[string]any{},
	}
}

// SetParam sets any parameter by its wire name, for parameters without a
// dedicated setter. A nil value or an empty slice unsets it.
func (b *RequestBuilder) SetParam(name string, value any) *RequestBuilder {
	if isUnset(value) {
		delete(b.params, name)
		return b
	}
	b.params[name] = value
	return b
}

func (b *RequestBuilder) Unset(name string) *RequestBuilder {
	delete(b.params, name)
	return b
}

func (b *RequestBuilder) SetStartDate(date time.Time) *RequestBuilder {
	return b.SetParam("start_date", date)
}

// Usage:
//
//	builder.SetStartDateExpr("3 months ago")
func (b *RequestBuilder) SetStartDateExpr(expr string) *RequestBuilder {
	return b.SetParam("start_date", expr)
}

func (b *RequestBuilder) SetEndDate(date time.Time) *RequestBuilder {
	return b.SetParam("end_date", date)
}

// Usage:
//
//	builder.SetEndDateExpr("now")
func (b *RequestBuilder) SetEndDateExpr(expr string) *RequestBuilder {
	return b.SetParam("end_date", expr)
}

func (b *RequestBuilder) SetLanguage(language string) *RequestBuilder {
	return b.SetParam("language", language)
}

func (b *RequestBuilder) SetLanguages(languages ...string) *RequestBuilder {
	return b.SetParam("languages", languages)
}

func (b *RequestBuilder) SetQueryWithin(within string) *RequestBuilder {
	return b.SetParam("query_within", within)
}

func (b *RequestBuilder) SetSourceQuery(query string) *RequestBuilder {
	return b.SetParam("source_query", query)
}

func (b *RequestBuilder) SetSourceQueryExclude(query string) *RequestBuilder {
	return b.SetParam("source_query_exclude", query)
}

func (b *RequestBuilder) SetInfluence(influence string) *RequestBuilder {
	return b.SetParam("influence", influence)
}

func (b *RequestBuilder) SetWatchlistIDs(ids ...int64) *RequestBuilder {
	return b.SetParam("watchlist_ids", ids)
}

func (b *RequestBuilder) SetDictionaryIDs(ids ...int64) *RequestBuilder {
	return b.SetParam("dictionary_ids", ids)
}

func (b *RequestBuilder) SetSourceIDs(ids ...int64) *RequestBuilder {
	return b.SetParam("source_ids", ids)
}

func (b *RequestBuilder) SetChannels(channels ...string) *RequestBuilder {
	return b.SetParam("channels", channels)
}

func (b *RequestBuilder) SetCountries(countries ...string) *RequestBuilder {
	return b.SetParam("countries", countries)
}

func (b *RequestBuilder) SetStates(states ...string) *RequestBuilder {
	return b.SetParam("states", states)
}

func (b *RequestBuilder) SetGender(gender string) *RequestBuilder {
	return b.SetParam("gender", gender)
}

func (b *RequestBuilder) SetAge(age string) *RequestBuilder {
	return b.SetParam("age", age)
}

func (b *RequestBuilder) SetWeekdays(weekdays ...string) *RequestBuilder {
	return b.SetParam("weekdays", weekdays)
}

// Hours of the day, 0 to 23.
func (b *RequestBuilder) SetHours(hours ...int) *RequestBuilder {
	return b.SetParam("hours", hours)
}

func (b *RequestBuilder) SetHourMin(hour int) *RequestBuilder {
	return b.SetParam("hour_min", hour)
}

func (b *RequestBuilder) SetHourMax(hour int) *RequestBuilder {
	return b.SetParam("hour_max", hour)
}

func (b *RequestBuilder) SetSample(sample float64) *RequestBuilder {
	return b.SetParam("sample", sample)
}

func (b *RequestBuilder) SetFoundFrom(date time.Time) *RequestBuilder {
	return b.SetParam("found_from", date)
}

func (b *RequestBuilder) SetFoundTo(date time.Time) *RequestBuilder {
	return b.SetParam("found_to", date)
}

func (b *RequestBuilder) SetIDMin(id int64) *RequestBuilder {
	return b.SetParam("id_min", id)
}

func (b *RequestBuilder) SetIDMax(id int64) *RequestBuilder {
	return b.SetParam("id_max", id)
}

func (b *RequestBuilder) SetFirehoseID(id string) *RequestBuilder {
	return b.SetParam("firehose_id", id)
}

func (b *RequestBuilder) SetFinancial(financial bool) *RequestBuilder {
	return b.SetParam("financial", financial)
}

func (b *RequestBuilder) SetIgnoreFutureData(ignore bool) *RequestBuilder {
	return b.SetParam("ignore_future_data", ignore)
}

// SetHTTPClient replaces http.DefaultClient for the built request.
func (b *RequestBuilder) SetHTTPClient(client *http.Client) *RequestBuilder {
	b.client = client
	return b
}

func (b *RequestBuilder) SetLogger(logger *slog.Logger) *RequestBuilder {
	b.logger = logger
	return b
}

// Build validates the parameters and returns a request owning a copy of them.
func (b *RequestBuilder) Build() (*Request, error) {
	if err := b.validate(); err != nil {
		return nil, &RequestError{Message: err.Error()}
	}

	params := maps.Clone(b.params)
	params[queryParam] = b.query

	req := &Request{
		params: params,
		cache:  map[string]map[string]any{},
		client: b.client,
		logger: b.logger,
	}
	if req.client == nil {
		req.client = http.DefaultClient
	}
	if req.logger == nil {
		req.logger = slog.Default()
	}
	return req, nil
}

func (b *RequestBuilder) validate() error {
	if strings.TrimSpace(b.query) == "" {
		return fmt.Errorf("`query` is required")
	}
	for name := range b.params {
		if reservedParams.Has(name) {
			return fmt.Errorf("`%s` is a reserved parameter name", name)
		}
	}

	for _, name := range []string{"hour_min", "hour_max"} {
		if hour, ok := b.params[name].(int); ok {
			if err := validate.Var(hour, "gte=0,lte=23"); err != nil {
				return fmt.Errorf("bad `%s`: %d is not an hour of the day", name, hour)
			}
		}
	}
	if hours, ok := b.params["hours"].([]int); ok {
		if err := validate.Var(hours, "dive,gte=0,lte=23"); err != nil {
			return fmt.Errorf("bad `hours`: %v contains a value outside 0-23", hours)
		}
	}

	// Ordered bounds
	bounds := [][2]string{{"hour_min", "hour_max"}, {"id_min", "id_max"}, {"found_from", "found_to"}}
	for _, bound := range bounds {
		lo, hasLo := b.params[bound[0]]
		hi, hasHi := b.params[bound[1]]
		if !hasLo || !hasHi || fmt.Sprintf("%T", lo) != fmt.Sprintf("%T", hi) {
			continue
		}
		switch lo.(type) {
		case int, int64, time.Time:
		default:
			continue
		}
		if err := validate.VarWithValue(hi, lo, "gtefield"); err != nil {
			return fmt.Errorf("bad interval: `%s` %v > `%s` %v", bound[0], massage(lo), bound[1], massage(hi))
		}
	}

	return nil
}
