package sql

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Mogrify returns the query with every positional placeholder replaced by
// its quoted parameter. The result is for logging and debugging only; never
// execute it.
func Mogrify(q Querier) string {
	query, args := q.Query()
	return MogrifyString(query, args)
}

// MogrifyString inlines args into the placeholders of query. Both numbered
// ($1, $2, ...) and question-mark placeholders are recognized.
func MogrifyString(query string, args []any) string {
	var sb strings.Builder
	next := 0
	for i := 0; i < len(query); i++ {
		switch ch := query[i]; {
		case ch == '?':
			if next < len(args) {
				sb.WriteString(quoteValue(args[next]))
				next++
			} else {
				sb.WriteByte(ch)
			}
		case ch == '$' && i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9':
			j := i + 1
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(query[i+1 : j])
			if n >= 1 && n <= len(args) {
				sb.WriteString(quoteValue(args[n-1]))
			} else {
				sb.WriteString(query[i:j])
			}
			i = j - 1
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

// quoteValue renders one parameter as a SQL literal.
func quoteValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(v)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return pq.QuoteLiteral(v)
	case []byte:
		return pq.QuoteLiteral(string(v))
	case time.Time:
		return pq.QuoteLiteral(v.Format("2006-01-02 15:04:05.999999-07"))
	case fmt.Stringer:
		return pq.QuoteLiteral(v.String())
	default:
		return pq.QuoteLiteral(fmt.Sprint(v))
	}
}
