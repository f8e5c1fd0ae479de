package device

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkoutny/go-ac250k/protocol"
)

// mockTransport scripts the bus: each Write arms the next canned response,
// which Read then drains. An empty script entry means the bus stays silent
// for that attempt.
type mockTransport struct {
	writes    [][]byte
	responses []string
	pending   []byte
	writeErr  error
	readErr   error
	flushes   int
	closed    bool
}

func (m *mockTransport) Read(p []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if len(m.pending) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.pending)
	m.pending = m.pending[n:]
	return n, nil
}

func (m *mockTransport) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.writes = append(m.writes, append([]byte(nil), p...))
	if i := len(m.writes) - 1; i < len(m.responses) {
		m.pending = []byte(m.responses[i])
	} else {
		m.pending = nil
	}
	return len(p), nil
}

func (m *mockTransport) Flush() error {
	m.flushes++
	m.pending = nil
	return nil
}

func (m *mockTransport) Close() error {
	m.closed = true
	return nil
}

func newTestSession(t *testing.T, transport Transport, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithReadTimeout(time.Millisecond)}, opts...)
	sess, err := New(transport, 10, opts...)
	require.NoError(t, err)
	return sess
}

func TestNewRejectsInvalidAddress(t *testing.T) {
	transport := &mockTransport{}

	for _, address := range []int{-1, 32, 254} {
		_, err := New(transport, address)

		var addrErr *protocol.InvalidAddressError
		require.ErrorAs(t, err, &addrErr, "address %d", address)
		assert.Equal(t, address, addrErr.Address)
	}

	assert.Empty(t, transport.writes, "validation must not touch the bus")
}

func TestNewAcceptsBroadcastAddress(t *testing.T) {
	sess, err := New(&mockTransport{}, protocol.BroadcastAddress)
	require.NoError(t, err)
	assert.Equal(t, protocol.BroadcastAddress, sess.Address())
}

func TestSetThenGetVoltage(t *testing.T) {
	transport := &mockTransport{responses: []string{"#0AOK\r", "#0ANAP012\r"}}
	sess := newTestSession(t, transport)
	ctx := context.Background()

	require.NoError(t, sess.SetVoltage(ctx, 12))

	volts, err := sess.Voltage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, volts)

	require.Len(t, transport.writes, 2)
	assert.Equal(t, "@0ANAP012E3\r", string(transport.writes[0]))
	assert.Equal(t, "@0ANAP???0D\r", string(transport.writes[1]))
}

func TestOutputToggle(t *testing.T) {
	transport := &mockTransport{responses: []string{
		"#0AOK\r", "#0AOUT1\r",
		"#0AOK\r", "#0AOUT0\r",
	}}
	sess := newTestSession(t, transport)
	ctx := context.Background()

	require.NoError(t, sess.SetOutputEnabled(ctx, true))
	on, err := sess.OutputEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, sess.SetOutputEnabled(ctx, false))
	on, err = sess.OutputEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, on)
}

func TestIdentification(t *testing.T) {
	transport := &mockTransport{responses: []string{"#0AAC250K2D REV1.2\r"}}
	sess := newTestSession(t, transport)

	id, err := sess.Identification(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AC250K2D REV1.2", id)
}

func TestSetVoltageValidatesBeforeIO(t *testing.T) {
	transport := &mockTransport{}
	sess := newTestSession(t, transport)

	err := sess.SetVoltage(context.Background(), 300)

	var voltErr *protocol.InvalidVoltageError
	require.ErrorAs(t, err, &voltErr)
	assert.Equal(t, 300, voltErr.Volts)
	assert.Empty(t, transport.writes, "validation must not touch the bus")
}

func TestWriteFailureIsFatal(t *testing.T) {
	cause := errors.New("device unplugged")
	transport := &mockTransport{writeErr: cause}
	sess := newTestSession(t, transport)

	_, err := sess.Voltage(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "write", transportErr.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, transport.flushes, "a fatal write must not be retried")
}

func TestReadFailureIsFatal(t *testing.T) {
	cause := errors.New("port gone")
	transport := &mockTransport{readErr: cause}
	sess := newTestSession(t, transport)

	_, err := sess.OutputEnabled(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, "read", transportErr.Op)
	assert.Len(t, transport.writes, 1)
}

func TestSilentBusExhaustsRetryBudget(t *testing.T) {
	transport := &mockTransport{}
	sess := newTestSession(t, transport)

	_, err := sess.Voltage(context.Background())

	var noResp *NoResponseError
	require.ErrorAs(t, err, &noResp)
	assert.Equal(t, 3, noResp.Attempts)
	assert.Len(t, transport.writes, 3, "write count must equal the retry budget")
	assert.Equal(t, 3, transport.flushes, "input must be discarded before every attempt")
}

func TestForeignResponderExhaustsToAddressMismatch(t *testing.T) {
	transport := &mockTransport{responses: []string{
		"#0BNAP012\r", "#0BNAP012\r", "#0BNAP012\r",
	}}
	sess := newTestSession(t, transport)

	_, err := sess.Voltage(context.Background())

	var mismatch *protocol.AddressMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 10, mismatch.Want)
	assert.Equal(t, 11, mismatch.Got)
	assert.Len(t, transport.writes, 3)
}

func TestMalformedResponseRecoversOnRetry(t *testing.T) {
	transport := &mockTransport{responses: []string{
		"\x12garbage\r", "#0ANAP100\r",
	}}
	sess := newTestSession(t, transport)

	volts, err := sess.Voltage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, volts)
	assert.Len(t, transport.writes, 2)
}

func TestDecodeFailureOutranksTimeout(t *testing.T) {
	// Attempt 1 times out, attempts 2-3 deliver garbage: the garbage is
	// the more informative failure.
	transport := &mockTransport{responses: []string{
		"", "noise\r", "noise\r",
	}}
	sess := newTestSession(t, transport)

	_, err := sess.Voltage(context.Background())

	var malformed *protocol.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Len(t, transport.writes, 3)
}

func TestWrongReplyShapeIsRetried(t *testing.T) {
	// A well-formed frame carrying the wrong payload for the command is
	// bus noise, not an answer.
	transport := &mockTransport{responses: []string{
		"#0AOUT1\r", "#0ANAP050\r",
	}}
	sess := newTestSession(t, transport)

	volts, err := sess.Voltage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 50, volts)
	assert.Len(t, transport.writes, 2)
}

func TestRefusedInstructionIsNotRetried(t *testing.T) {
	transport := &mockTransport{responses: []string{"#0AErr\r"}}
	sess := newTestSession(t, transport)

	err := sess.SetVoltage(context.Background(), 12)

	var refused *protocol.CommandRefusedError
	require.ErrorAs(t, err, &refused)
	assert.Equal(t, "NAP012", refused.Instruction)
	assert.Len(t, transport.writes, 1, "a clean refusal consumed the exchange")
}

func TestConfiguredRetryBudget(t *testing.T) {
	transport := &mockTransport{}
	sess := newTestSession(t, transport, WithRetries(5))

	_, err := sess.Voltage(context.Background())

	var noResp *NoResponseError
	require.ErrorAs(t, err, &noResp)
	assert.Equal(t, 5, noResp.Attempts)
	assert.Len(t, transport.writes, 5)
}

func TestCancelledContextStopsBeforeWrite(t *testing.T) {
	transport := &mockTransport{}
	sess := newTestSession(t, transport)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sess.Voltage(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, transport.writes)
}

func TestCloseReleasesTransportClean(t *testing.T) {
	transport := &mockTransport{}
	sess := newTestSession(t, transport)

	require.NoError(t, sess.Close())
	assert.True(t, transport.closed)
	assert.Equal(t, 1, transport.flushes, "close must not leave pending input")
}

func TestNilTransportPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = New(nil, 10)
	})
}
