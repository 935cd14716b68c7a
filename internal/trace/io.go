package trace

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// Writer appends records to a trace. It buffers; call Flush or Close when done.
type Writer struct {
	w      *bufio.Writer
	closer io.Closer
	msg    []byte
	rec    []byte
}

func NewWriter(w io.Writer, h Header) (*Writer, error) {
	tw := &Writer{
		w:   bufio.NewWriter(w),
		msg: make([]byte, 0, 64),
		rec: make([]byte, 0, 72),
	}
	tw.msg = appendHeader(tw.msg[:0], h)
	if err := tw.writeRecord(); err != nil {
		return nil, fmt.Errorf("write trace header: %w", err)
	}
	return tw, nil
}

// Create opens path for writing and writes the header. Close closes the file.
func Create(path string, h Header) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace: %w", err)
	}
	w, err := NewWriter(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

func (w *Writer) WriteFrame(f Frame) error {
	w.msg = appendFrame(w.msg[:0], f)
	if err := w.writeRecord(); err != nil {
		return fmt.Errorf("write trace frame %d: %w", f.Tick, err)
	}
	return nil
}

func (w *Writer) writeRecord() error {
	w.rec = protowire.AppendBytes(w.rec[:0], w.msg)
	_, err := w.w.Write(w.rec)
	return err
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

func (w *Writer) Close() error {
	err := w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reader decodes a trace written by Writer.
type Reader struct {
	Header Header

	r   *bufio.Reader
	buf []byte
}

func NewReader(r io.Reader) (*Reader, error) {
	tr := &Reader{
		r:   bufio.NewReader(r),
		buf: make([]byte, 0, 64),
	}
	b, err := tr.readRecord()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, corrupt(errors.New("missing header"))
		}
		return nil, err
	}
	if tr.Header, err = decodeHeader(b); err != nil {
		return nil, err
	}
	return tr, nil
}

// Next returns the next frame, or io.EOF at the end of the trace.
func (r *Reader) Next() (Frame, error) {
	b, err := r.readRecord()
	if err != nil {
		return Frame{}, err
	}
	return decodeFrame(b)
}

func (r *Reader) readRecord() ([]byte, error) {
	size, err := binary.ReadUvarint(r.r)
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, corrupt(fmt.Errorf("record length: %w", err))
	}
	if size > maxRecordSize {
		return nil, corrupt(fmt.Errorf("record of %d bytes", size))
	}

	if cap(r.buf) < int(size) {
		r.buf = make([]byte, size)
	}
	r.buf = r.buf[:size]
	if _, err := io.ReadFull(r.r, r.buf); err != nil {
		return nil, corrupt(fmt.Errorf("record body: %w", err))
	}
	return r.buf, nil
}
