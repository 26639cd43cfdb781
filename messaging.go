// messaging.go: dispatchers carrying discovery records to the host service
//
// Locators push finished records through the MessageDispatcher interface
// and never see the transport. The line-oriented JSON-RPC dispatcher here
// matches what a hosting process expects on stdout; the collecting
// dispatcher backs tests and in-process embedding.
//
// Copyright (c) 2025 pyfinder contributors
// SPDX-License-Identifier: MPL-2.0

package pyfinder

import (
	"encoding/json"
	"io"
	"sync"
)

// JSON-RPC notification methods emitted by discovery.
const (
	methodEnvManager        = "envManager"
	methodPythonEnvironment = "pythonEnvironment"
)

// jsonRPCNotification is the envelope for one outgoing discovery message.
type jsonRPCNotification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// JSONRPCDispatcher writes discovery records as JSON-RPC 2.0 notifications,
// one JSON object per line, to an io.Writer (conventionally stdout).
//
// Writes are serialized, so one dispatcher may receive reports from several
// locators. Write failures are logged and the offending message dropped;
// discovery output is best effort.
type JSONRPCDispatcher struct {
	mu     sync.Mutex
	writer io.Writer
	logger Logger
}

// NewJSONRPCDispatcher creates a dispatcher writing to w. A nil logger
// silences write-failure logging.
func NewJSONRPCDispatcher(w io.Writer, logger ...any) *JSONRPCDispatcher {
	var l any
	if len(logger) > 0 {
		l = logger[0]
	}
	return &JSONRPCDispatcher{
		writer: w,
		logger: NewLogger(l),
	}
}

func (d *JSONRPCDispatcher) send(method string, params any) {
	payload, err := json.Marshal(jsonRPCNotification{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	})
	if err != nil {
		d.logger.Error("Failed to encode discovery message", "error", NewDispatchError(method, err))
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.writer.Write(append(payload, '\n')); err != nil {
		d.logger.Error("Failed to write discovery message", "error", NewDispatchError(method, err))
	}
}

// ReportEnvironmentManager implements MessageDispatcher.
func (d *JSONRPCDispatcher) ReportEnvironmentManager(manager EnvManager) {
	d.send(methodEnvManager, manager)
}

// ReportEnvironment implements MessageDispatcher.
func (d *JSONRPCDispatcher) ReportEnvironment(env PythonEnvironment) {
	d.send(methodPythonEnvironment, env)
}

// CollectingDispatcher retains every reported record in memory. It backs
// tests and hosts that consume discovery results in-process.
type CollectingDispatcher struct {
	mu           sync.Mutex
	managers     []EnvManager
	environments []PythonEnvironment
}

// NewCollectingDispatcher creates an empty collecting dispatcher.
func NewCollectingDispatcher() *CollectingDispatcher {
	return &CollectingDispatcher{}
}

// ReportEnvironmentManager implements MessageDispatcher.
func (d *CollectingDispatcher) ReportEnvironmentManager(manager EnvManager) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.managers = append(d.managers, manager)
}

// ReportEnvironment implements MessageDispatcher.
func (d *CollectingDispatcher) ReportEnvironment(env PythonEnvironment) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.environments = append(d.environments, env)
}

// Managers returns the managers reported so far, in report order.
func (d *CollectingDispatcher) Managers() []EnvManager {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]EnvManager, len(d.managers))
	copy(out, d.managers)
	return out
}

// Environments returns the environment records reported so far, in report
// order.
func (d *CollectingDispatcher) Environments() []PythonEnvironment {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]PythonEnvironment, len(d.environments))
	copy(out, d.environments)
	return out
}

// Reset discards everything collected so far.
func (d *CollectingDispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.managers = nil
	d.environments = nil
}
