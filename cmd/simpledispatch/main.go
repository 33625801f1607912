// Command simpledispatch is an interactive REPL over a three-command
// dispatch tree backed by a shared counter:
//
//	>> ping
//	Pong
//	>> print
//	0
//	>> set_value 123
//	123 stored
//	>> print
//	123
//
// Unknown input prints "Unknown command". The tree demonstrates the two
// gate styles: filters for the argument-less commands and a narrowing
// parser for set_value, whose handler needs the parsed value injected.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/bjaus/dtree"
)

// Event is the incoming command.
type Event interface{ isEvent() }

// Ping asks for a liveness answer.
type Ping struct{}

// PrintValue asks for the stored counter value.
type PrintValue struct{}

// SetValue stores a new counter value.
type SetValue struct {
	Value int32
}

func (Ping) isEvent()       {}
func (PrintValue) isEvent() {}
func (SetValue) isEvent()   {}

// parseEvent turns a line of user input into an Event.
func parseEvent(line string) (Event, bool) {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 1 && fields[0] == "ping":
		return Ping{}, true
	case len(fields) == 1 && fields[0] == "print":
		return PrintValue{}, true
	case len(fields) == 2 && fields[0] == "set_value":
		v, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return nil, false
		}
		return SetValue{Value: int32(v)}, true
	}
	return nil, false
}

func pingHandler() dtree.Handler[string] {
	return dtree.FilterOn[string](func(e Event) bool {
		_, ok := e.(Ping)
		return ok
	}).Endpoint(dtree.Func0(func(ctx context.Context) (string, error) {
		return "Pong", nil
	}))
}

func setValueHandler() dtree.Handler[string] {
	return dtree.Parse[string](dtree.AsVariant[Event, SetValue]()).
		Endpoint(dtree.Func2(func(ctx context.Context, e SetValue, store *atomic.Int32) (string, error) {
			store.Store(e.Value)
			return fmt.Sprintf("%d stored", e.Value), nil
		}))
}

func printValueHandler() dtree.Handler[string] {
	return dtree.FilterOn[string](func(e Event) bool {
		_, ok := e.(PrintValue)
		return ok
	}).Endpoint(dtree.Func1(func(ctx context.Context, store *atomic.Int32) (string, error) {
		return strconv.Itoa(int(store.Load())), nil
	}))
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store := &atomic.Int32{}

	root := dtree.Node[string]().
		And(pingHandler()).
		And(setValueHandler()).
		And(printValueHandler()).
		Build()

	d := dtree.NewDispatcher[Event](root,
		dtree.WithDependencies(store),
		dtree.WithOnBreak(func(ctx context.Context, event string, dur time.Duration) {
			logger.Debug("event handled",
				zap.String("event", event),
				zap.Duration("duration", dur))
		}),
		dtree.WithOnError(func(ctx context.Context, event string, err error, dur time.Duration) {
			logger.Error("dispatch failed",
				zap.String("event", event),
				zap.Error(err))
		}),
	)

	if err := d.Check(); err != nil {
		logger.Fatal("handler tree has unsatisfiable dependencies", zap.Error(err))
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(">> ")
		if !scanner.Scan() {
			break
		}

		event, ok := parseEvent(scanner.Text())
		if !ok {
			fmt.Println("Unknown command")
			continue
		}

		out, err := d.Dispatch(ctx, event)
		switch {
		case errors.Is(err, dtree.ErrNoHandlerMatched):
			fmt.Println("Unknown command")
		case err != nil:
			logger.Error("dispatch error", zap.Error(err))
		default:
			fmt.Println(out)
		}
	}
}
