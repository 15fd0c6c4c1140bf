package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log bất đồng bộ qua một goroutine riêng để không block request handling.
// Entry được đẩy vào channel có buffer, goroutine xử lý format rồi ghi ra tất cả writers.
type AsyncHook struct {
	writers    []io.Writer
	entries    chan *logrus.Entry
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	bufferSize int
	dropped    uint64
}

// NewAsyncHookWithWriters tạo một async hook mới với nhiều writers
// bufferSize: kích thước buffer cho log entries (mặc định 1000)
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers:    writers,
		entries:    make(chan *logrus.Entry, bufferSize),
		bufferSize: bufferSize,
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire không block: channel đầy thì entry bị bỏ và tăng bộ đếm dropped
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		// Hook đã đóng thì ghi trực tiếp
		return h.write(entry)
	}

	select {
	case h.entries <- copyEntry(entry):
	default:
		h.dropped++
	}
	return nil
}

// Dropped trả về số entry bị bỏ do buffer đầy
func (h *AsyncHook) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// copyEntry sao chép entry vì logrus tái sử dụng entry sau khi Fire trả về
func copyEntry(entry *logrus.Entry) *logrus.Entry {
	dup := *entry
	dup.Data = make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		dup.Data[k] = v
	}
	dup.Buffer = nil
	return &dup
}

// processEntries chạy trong goroutine riêng, có recover để logger không làm crash server
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Không dùng logger ở đây để tránh vòng lặp
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] Logger goroutine panic recovered: %v\n", r)
					debug.PrintStack()
				}
			}()
			_ = h.write(entry)
		}()
	}
}

// write format entry bằng formatter của logger rồi ghi vào tất cả writers
func (h *AsyncHook) write(entry *logrus.Entry) error {
	var data []byte
	var err error

	if entry.Logger != nil && entry.Logger.Formatter != nil {
		data, err = entry.Logger.Formatter.Format(entry)
	} else {
		var line string
		line, err = entry.String()
		data = []byte(line)
	}
	if err != nil {
		return err
	}

	// Một writer lỗi không chặn các writer còn lại
	for _, writer := range h.writers {
		_, _ = writer.Write(data)
	}
	return nil
}

// Close đóng hook và đợi tất cả entries được xử lý xong
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}
