// Package analytics records usage events for gitcite.
//
// The events mirror what a citation front end cares about: searches,
// generated citations, copies to the clipboard, and errors shown to the
// user. Events never contain repository metadata beyond the reference the
// user typed.
//
// # Architecture
//
// A [Sink] stores events. Implementations exist for different backends:
//   - [NopSink]: discards everything
//   - [LogSink]: writes events through charmbracelet/log
//   - [FileSink]: appends JSON lines to a local file
//   - [RedisSink]: appends to a Redis stream with XADD
//   - [MongoSink]: inserts one document per event
//
// A [Tracker] wraps a sink so that tracking never fails the caller: sink
// errors are logged at debug level and dropped.
//
// # Usage
//
//	sink, err := analytics.Open(ctx, analytics.Config{Sink: "redis", RedisAddr: "localhost:6379"}, logger)
//	if err != nil {
//	    return err
//	}
//	tracker := analytics.NewTracker(sink, logger)
//	defer tracker.Close(ctx)
//
//	tracker.Track(ctx, analytics.GenerateCitation("spf13/cobra", true))
package analytics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// EventType names an analytics event.
type EventType string

const (
	EventSearch           EventType = "search"
	EventGenerateCitation EventType = "generate_citation"
	EventCopyCitation     EventType = "copy_citation"
	EventError            EventType = "error"
)

// Event is a single analytics record.
type Event struct {
	ID         string            `json:"id" bson:"_id"`
	Type       EventType         `json:"type" bson:"type"`
	Time       time.Time         `json:"time" bson:"time"`
	Properties map[string]string `json:"properties,omitempty" bson:"properties,omitempty"`
}

// NewEvent creates an event with a fresh UUID and the current UTC time.
func NewEvent(t EventType, props map[string]string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		Time:       time.Now().UTC(),
		Properties: props,
	}
}

// Search records a suggestion lookup.
func Search(query string) Event {
	return NewEvent(EventSearch, map[string]string{"search_term": query})
}

// GenerateCitation records a citation attempt for repoURL.
func GenerateCitation(repoURL string, successful bool) Event {
	return NewEvent(EventGenerateCitation, map[string]string{
		"repo_url":   repoURL,
		"successful": strconv.FormatBool(successful),
	})
}

// CopyCitation records a citation copied to the clipboard.
func CopyCitation(repoName string) Event {
	return NewEvent(EventCopyCitation, map[string]string{"repo_name": repoName})
}

// Error records an error reported to the user. source names the component
// that raised it.
func Error(message, source string) Event {
	return NewEvent(EventError, map[string]string{
		"error_message": message,
		"source":        source,
	})
}

// Sink stores analytics events.
type Sink interface {
	Track(ctx context.Context, e Event) error
	Close(ctx context.Context) error
}

// Sink names accepted by [Open].
const (
	SinkNone  = "none"
	SinkLog   = "log"
	SinkFile  = "file"
	SinkRedis = "redis"
	SinkMongo = "mongo"
)

// Config selects and configures a sink.
type Config struct {
	Sink            string
	FilePath        string
	RedisAddr       string
	RedisStream     string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open creates the sink named by cfg.Sink. An empty name means [SinkNone].
func Open(ctx context.Context, cfg Config, logger *log.Logger) (Sink, error) {
	switch cfg.Sink {
	case "", SinkNone:
		return NopSink{}, nil
	case SinkLog:
		return NewLogSink(logger), nil
	case SinkFile:
		return nonNil(NewFileSink(cfg.FilePath))
	case SinkRedis:
		return nonNil(NewRedisSink(ctx, cfg.RedisAddr, cfg.RedisStream))
	case SinkMongo:
		return nonNil(NewMongoSink(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection))
	default:
		return nil, fmt.Errorf("unknown analytics sink %q", cfg.Sink)
	}
}

// nonNil keeps a typed nil pointer out of the returned interface.
func nonNil[S Sink](s S, err error) (Sink, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) Track(context.Context, Event) error { return nil }
func (NopSink) Close(context.Context) error        { return nil }

// Tracker forwards events to a sink and swallows its failures.
// A nil *Tracker is valid and tracks nothing.
type Tracker struct {
	sink   Sink
	logger *log.Logger
}

// NewTracker creates a tracker for sink. If logger is nil, log.Default() is used.
func NewTracker(sink Sink, logger *log.Logger) *Tracker {
	if sink == nil {
		sink = NopSink{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Tracker{sink: sink, logger: logger}
}

// Track records e. Failures are logged at debug level.
func (t *Tracker) Track(ctx context.Context, e Event) {
	if t == nil {
		return
	}
	if err := t.sink.Track(ctx, e); err != nil {
		t.logger.Debug("analytics event dropped", "type", e.Type, "error", err)
	}
}

// Close releases the sink.
func (t *Tracker) Close(ctx context.Context) error {
	if t == nil {
		return nil
	}
	return t.sink.Close(ctx)
}
