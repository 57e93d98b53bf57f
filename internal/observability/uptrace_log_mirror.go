package observability

import (
	"context"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/mbarese/transfer-sim/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
	"go.uber.org/zap/zapcore"
)

const (
	uptraceLogInstrumentation = "transfer-sim/internal/platform/logging"
	healthPath                = "/healthz"
	maxLogValueDepth          = 3
)

// newUptraceLogMirror adapts the logging package's mirror hook to the OTel
// log bridge so every zap record also reaches Uptrace.
func newUptraceLogMirror(serviceVersion string) logging.MirrorFunc {
	bridge := otelglobal.Logger(
		uptraceLogInstrumentation,
		otellog.WithInstrumentationVersion(serviceVersion),
	)

	return func(ctx context.Context, level logging.Level, msg string, args ...any) {
		if dropMirroredRecord(msg, args) {
			return
		}
		if ctx == nil {
			ctx = context.Background()
		}

		severity := severityForLevel(level)
		if !bridge.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
			return
		}

		now := time.Now().UTC()
		var rec otellog.Record
		rec.SetTimestamp(now)
		rec.SetObservedTimestamp(now)
		rec.SetSeverity(severity)
		rec.SetSeverityText(strings.ToUpper(level.String()))
		rec.SetEventName(msg)
		rec.SetBody(otellog.StringValue(msg))
		if attrs := logArgsToAttributes(args); len(attrs) > 0 {
			rec.AddAttributes(attrs...)
		}

		bridge.Emit(ctx, rec)
	}
}

// dropMirroredRecord filters access logs for the liveness endpoint, which
// would otherwise dominate the ingested volume.
func dropMirroredRecord(msg string, args []any) bool {
	if msg != "http request" {
		return false
	}
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); !ok || key != "path" {
			continue
		}
		path, ok := args[i+1].(string)
		return ok && path == healthPath
	}
	return false
}

// logArgsToAttributes converts alternating key/value args the way slog
// would: non-string keys get positional names, a trailing key without a
// value becomes an empty attribute.
func logArgsToAttributes(args []any) []otellog.KeyValue {
	if len(args) == 0 {
		return nil
	}

	attrs := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprintf("arg_%d", i/2)
		if k, ok := args[i].(string); ok && strings.TrimSpace(k) != "" {
			key = k
		}
		if i+1 >= len(args) {
			attrs = append(attrs, otellog.Empty(key))
			break
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: logValue(args[i+1], 0)})
	}

	return attrs
}

func severityForLevel(level zapcore.Level) otellog.Severity {
	switch {
	case level <= zapcore.DebugLevel:
		return otellog.SeverityDebug
	case level == zapcore.InfoLevel:
		return otellog.SeverityInfo
	case level == zapcore.WarnLevel:
		return otellog.SeverityWarn
	case level >= zapcore.DPanicLevel:
		return otellog.SeverityFatal
	default:
		return otellog.SeverityError
	}
}

// logValue maps an arbitrary log argument onto the OTel value model.
// Nesting beyond maxLogValueDepth is stringified.
func logValue(v any, depth int) otellog.Value {
	if depth >= maxLogValueDepth {
		return otellog.StringValue(fmt.Sprint(v))
	}
	if v == nil {
		return otellog.Value{}
	}

	switch t := v.(type) {
	case string:
		return otellog.StringValue(t)
	case bool:
		return otellog.BoolValue(t)
	case int:
		return otellog.IntValue(t)
	case int8, int16, int32, int64:
		return otellog.Int64Value(reflect.ValueOf(t).Int())
	case uint, uint16, uint32, uint64, uintptr:
		if u := reflect.ValueOf(t).Uint(); u <= math.MaxInt64 {
			return otellog.Int64Value(int64(u))
		}
		return otellog.StringValue(fmt.Sprint(t))
	case uint8:
		return otellog.Int64Value(int64(t))
	case float32:
		return otellog.Float64Value(float64(t))
	case float64:
		return otellog.Float64Value(t)
	case []byte:
		return otellog.BytesValue(append([]byte(nil), t...))
	case time.Time:
		return otellog.StringValue(t.UTC().Format(time.RFC3339Nano))
	case time.Duration:
		return otellog.StringValue(t.String())
	case error:
		return otellog.StringValue(t.Error())
	case fmt.Stringer:
		return otellog.StringValue(t.String())
	}

	return reflectedLogValue(reflect.ValueOf(v), depth)
}

func reflectedLogValue(rv reflect.Value, depth int) otellog.Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return otellog.Value{}
		}
		return logValue(rv.Elem().Interface(), depth+1)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			out := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(out), rv)
			return otellog.BytesValue(out)
		}
		items := make([]otellog.Value, rv.Len())
		for i := range items {
			items[i] = logValue(rv.Index(i).Interface(), depth+1)
		}
		return otellog.SliceValue(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return otellog.StringValue(fmt.Sprint(rv.Interface()))
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		kvs := make([]otellog.KeyValue, 0, len(keys))
		for _, k := range keys {
			kvs = append(kvs, otellog.KeyValue{
				Key:   k.String(),
				Value: logValue(rv.MapIndex(k).Interface(), depth+1),
			})
		}
		return otellog.MapValue(kvs...)
	default:
		return otellog.StringValue(fmt.Sprint(rv.Interface()))
	}
}
