package logtail

import (
	"strings"
	"time"

	"github.com/go-logfmt/logfmt"
)

// Field is one key=value pair not promoted to a Record field.
type Field struct {
	Key   string
	Value string
}

// Record is one parsed logfmt line. Lines that are not logfmt keep their
// text in Msg with Raw set.
type Record struct {
	Time      time.Time
	Level     string
	Msg       string
	Component string
	Fields    []Field
	Raw       bool
}

// Parse decodes a logfmt line as written by the application logger.
func Parse(line string) Record {
	dec := logfmt.NewDecoder(strings.NewReader(line))
	var rec Record
	if !dec.ScanRecord() {
		return Record{Msg: line, Raw: true}
	}
	for dec.ScanKeyval() {
		key, val := string(dec.Key()), string(dec.Value())
		switch key {
		case "time", "ts":
			if t, err := time.Parse(time.RFC3339, val); err == nil {
				rec.Time = t
				continue
			}
			rec.Fields = append(rec.Fields, Field{Key: key, Value: val})
		case "level":
			rec.Level = strings.ToLower(val)
		case "msg":
			rec.Msg = val
		case "component":
			rec.Component = val
		default:
			rec.Fields = append(rec.Fields, Field{Key: key, Value: val})
		}
	}
	if dec.Err() != nil || (rec.Level == "" && rec.Msg == "") {
		return Record{Msg: line, Raw: true}
	}
	return rec
}

// FieldString renders the extra fields as logfmt.
func (r Record) FieldString() string {
	if len(r.Fields) == 0 {
		return ""
	}
	kv := make([]any, 0, 2*len(r.Fields))
	for _, f := range r.Fields {
		kv = append(kv, f.Key, f.Value)
	}
	out, err := logfmt.MarshalKeyvals(kv...)
	if err != nil {
		return ""
	}
	return string(out)
}
