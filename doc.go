/*
Package adc reads and writes ADC command streams.

The wire codec lives in the proto subpackage. This package adds what a hub
or client needs around it:

  - Reader frames a stream on '\n' (or '|' for NMDC tunnelled lines),
    skips keep-alives and parses each line.
  - Writer renders commands and writes one line per call, safe for
    concurrent use.
  - Dispatcher hands commands to a fixed set of workers, keeping the order
    of commands sent by the same SID.

# Malformed input

By default the Reader returns the first malformed line as a
*proto.ParseError. With a MalformedLineBreaker the Reader logs and skips
malformed lines until the peer has sent too many of them, then returns
ErrTooManyMalformed:

	r := adc.NewReader(conn, adc.ReaderConfig{
		MalformedLineBreaker: adc.NewMalformedLineBreaker(conn.RemoteAddr().String(), 5, time.Minute, 30*time.Second),
	})
	for {
		cmd, err := r.Read()
		if err != nil {
			return err
		}
		if err := d.Dispatch(ctx, cmd); err != nil {
			return err
		}
	}
*/
package adc
