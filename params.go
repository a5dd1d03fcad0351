package atlas

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
	"k8s.io/apimachinery/pkg/util/sets"
)

const (
	queryParam  = "query"
	apiKeyParam = "api_key"
)

// Names a caller cannot set through [RequestBuilder.SetParam].
var reservedParams = sets.New("", apiKeyParam, queryParam)

// encodeParams renders the set parameters as "&name=value" pairs, sorted by
// name.
func encodeParams(params map[string]any) string {
	var sb strings.Builder
	for _, name := range sets.List(sets.KeySet(params)) {
		v := params[name]
		if isUnset(v) {
			continue
		}
		sb.WriteString("&")
		sb.WriteString(url.QueryEscape(name))
		sb.WriteString("=")
		sb.WriteString(url.QueryEscape(massage(v)))
	}
	return sb.String()
}

// massage converts a parameter value to its wire form:
// booleans as 1/0, dates as YYYY-MM-DD, sequences comma-joined.
func massage(v any) string {
	switch t := v.(type) {
	case bool:
		if t {
			return "1"
		}
		return "0"
	case string:
		return t
	case time.Time:
		return t.Format(time.DateOnly)
	case int:
		return formatInteger(t)
	case int8:
		return formatInteger(t)
	case int16:
		return formatInteger(t)
	case int32:
		return formatInteger(t)
	case int64:
		return formatInteger(t)
	case uint:
		return formatInteger(t)
	case uint8:
		return formatInteger(t)
	case uint16:
		return formatInteger(t)
	case uint32:
		return formatInteger(t)
	case uint64:
		return formatInteger(t)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []string:
		return strings.Join(t, ",")
	case []int:
		return joinIntegers(t)
	case []int64:
		return joinIntegers(t)
	case []float64:
		return joinList(t)
	case []bool:
		return joinList(t)
	case []time.Time:
		return joinList(t)
	case []any:
		return joinList(t)
	case fmt.Stringer:
		return t.String()
	}

	// Any other slice or array
	if rv := reflect.ValueOf(v); isSequence(rv) {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = massage(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}

func isSequence(rv reflect.Value) bool {
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

func formatInteger[T constraints.Integer](n T) string {
	if n < 0 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatUint(uint64(n), 10)
}

func joinIntegers[T constraints.Integer](ns []T) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = formatInteger(n)
	}
	return strings.Join(parts, ",")
}

func joinList[T any](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = massage(v)
	}
	return strings.Join(parts, ",")
}

// isUnset reports nil values and empty sequences.
func isUnset(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []string:
		return len(t) == 0
	case []int:
		return len(t) == 0
	case []int64:
		return len(t) == 0
	case []float64:
		return len(t) == 0
	case []bool:
		return len(t) == 0
	case []time.Time:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	rv := reflect.ValueOf(v)
	return isSequence(rv) && rv.Len() == 0
}
