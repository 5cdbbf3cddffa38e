// Package audit provides driven.AuditSink implementations that sit next to
// the persisted audit log.
//
//   - NATSPublisher: publishes each event as JSON on
//     <prefix>.<entity>.<action>, e.g. juris.audit.process.update
//   - Instrumented: wraps a sink and counts emitted and failed events
//     with Prometheus
//   - Fanout: delivers one event to several sinks
//
// Sinks are invoked after the mutation has committed, so a failure here
// never undoes a change.
package audit
