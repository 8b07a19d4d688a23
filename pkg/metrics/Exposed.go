package metrics

var SessionsActive = NewGauge("deltaterm_sessions_active", "Currently active terminal sessions", []string{})
var SessionsTotal = NewCounter("deltaterm_sessions_total", "Total terminal sessions created", []string{})
var SessionsRejected = NewCounter("deltaterm_sessions_rejected_total", "Connections rejected by the session limiter", []string{})
var SessionErrors = NewCounter("deltaterm_session_errors_total", "Session failures by kind", []string{"kind"})
var BytesRelayed = NewCounter("deltaterm_bytes_relayed_total", "Bytes relayed between connection and PTY", []string{"direction"})
