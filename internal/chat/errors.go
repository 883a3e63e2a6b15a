package chat

import "fmt"

// ToolBridgeError reports a connection or discovery failure against the
// external tool server. The underlying transport cause is preserved so the
// caller receives a precise reason, never a bare generic message.
type ToolBridgeError struct {
	Cause error
}

func (e *ToolBridgeError) Error() string { return e.Cause.Error() }
func (e *ToolBridgeError) Unwrap() error { return e.Cause }

// UpstreamError reports a failure of the hosted model invocation itself.
type UpstreamError struct {
	Cause error
}

func (e *UpstreamError) Error() string { return fmt.Sprintf("model invocation: %v", e.Cause) }
func (e *UpstreamError) Unwrap() error { return e.Cause }
