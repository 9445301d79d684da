package adc

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pior/adc/internal/testutils"
	"github.com/pior/adc/proto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestReader_Read(t *testing.T) {
	conn := testutils.NewConnectionMock(
		"BINF AAAB NIalice\n",
		"\n",
		"\n",
		"DMSG AAAB AAAC hi\\sthere\n",
	)
	r := NewReader(conn, DefaultReaderConfig())

	cmd, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, proto.TypeBroadcast, cmd.Type)
	assert.Equal(t, proto.CmdINF, cmd.Code)
	assert.Equal(t, proto.SIDOf("AAAB"), cmd.From)
	assert.Equal(t, []string{"NIalice"}, cmd.Params)

	cmd, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, proto.TypeDirect, cmd.Type)
	assert.Equal(t, proto.SIDOf("AAAC"), cmd.To)
	assert.Equal(t, []string{"hi there"}, cmd.Params)

	_, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)

	stats := r.Stats()
	assert.Equal(t, uint64(4), stats.Lines)
	assert.Equal(t, uint64(2), stats.Commands)
	assert.Equal(t, uint64(2), stats.KeepAlives)
	assert.Equal(t, uint64(0), stats.Malformed)
	assert.Equal(t, uint64(len("BINF AAAB NIalice\n\n\nDMSG AAAB AAAC hi\\sthere\n")), stats.Bytes)
}

func TestReader_Legacy(t *testing.T) {
	conn := testutils.NewConnectionMock("$ADCSUP ADBASE ADTIGR|", "|", "$ADCMSG a\\ b|")
	r := NewReader(conn, ReaderConfig{Legacy: true})

	cmd, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, proto.TypeClient, cmd.Type)
	assert.Equal(t, proto.CmdSUP, cmd.Code)
	assert.Equal(t, []string{"ADBASE", "ADTIGR"}, cmd.Params)

	cmd, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, proto.CmdMSG, cmd.Code)
	assert.Equal(t, []string{"a b"}, cmd.Params)

	_, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, uint64(1), r.Stats().KeepAlives)
}

func TestReader_StrictParseError(t *testing.T) {
	conn := testutils.NewConnectionMock("XMSG hello\n", "BMSG AAAB ok\n")
	r := NewReader(conn, DefaultReaderConfig())

	_, err := r.Read()
	require.Error(t, err)

	var pe *proto.ParseError
	require.True(t, errors.As(err, &pe))
	assert.ErrorIs(t, err, proto.ErrInvalidType)
	assert.Equal(t, "XMSG hello", pe.Line)
	assert.Equal(t, uint64(1), r.Stats().Malformed)

	// The stream is still usable.
	cmd, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, cmd.Params)
}

func TestReader_BreakerSkipsMalformed(t *testing.T) {
	conn := testutils.NewConnectionMock("BMSG\n", "DMSG AAAB\n", "BMSG AAAB ok\n")
	r := NewReader(conn, ReaderConfig{
		MalformedLineBreaker: NewMalformedLineBreaker("test", 5, time.Minute, time.Minute),
		Logger:               quietLogger(),
	})

	cmd, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, cmd.Params)

	stats := r.Stats()
	assert.Equal(t, uint64(2), stats.Malformed)
	assert.Equal(t, uint64(1), stats.Commands)
}

func TestReader_BreakerOpens(t *testing.T) {
	conn := testutils.NewConnectionMock("X\n", "Y\n", "Z\n", "BMSG AAAB ok\n")
	r := NewReader(conn, ReaderConfig{
		MalformedLineBreaker: NewMalformedLineBreaker("test", 3, time.Minute, time.Minute),
		Logger:               quietLogger(),
	})

	_, err := r.Read()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyMalformed)
	assert.False(t, proto.IsParseError(err))
	assert.Equal(t, uint64(3), r.Stats().Malformed)
}

func TestReader_LineTooLong(t *testing.T) {
	conn := testutils.NewConnectionMock("BMSG AAAB " + strings.Repeat("x", 100) + "\n")
	r := NewReader(conn, ReaderConfig{MaxLineLength: 32})

	_, err := r.Read()
	assert.ErrorIs(t, err, ErrLineTooLong)
}

func TestReader_LineLargerThanBuffer(t *testing.T) {
	payload := strings.Repeat("x", 200)
	br := bufio.NewReaderSize(testutils.NewConnectionMock("BMSG AAAB "+payload+"\n"), 16)
	r := NewReader(br, ReaderConfig{MaxLineLength: 1024})

	cmd, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{payload}, cmd.Params)
}

func TestReader_LineLargerThanBufferTooLong(t *testing.T) {
	br := bufio.NewReaderSize(testutils.NewConnectionMock("BMSG AAAB "+strings.Repeat("x", 200)+"\n"), 16)
	r := NewReader(br, ReaderConfig{MaxLineLength: 64})

	_, err := r.Read()
	assert.ErrorIs(t, err, ErrLineTooLong)
}

func TestReader_UnexpectedEOF(t *testing.T) {
	r := NewReader(testutils.NewConnectionMock("BMSG AAAB cut"), DefaultReaderConfig())

	_, err := r.Read()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReader_Empty(t *testing.T) {
	r := NewReader(testutils.NewConnectionMock(), DefaultReaderConfig())

	_, err := r.Read()
	assert.ErrorIs(t, err, io.EOF)
}
