package uploadclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	progressBarWidth     = 32
	progressRenderPeriod = 120 * time.Millisecond
)

// progressBar рисует ASCII-индикатор отправки файла в out.
type progressBar struct {
	out           io.Writer
	prefix        string
	total         int64
	current       int64
	lastRender    time.Time
	lastLineWidth int
	finished      bool
	mu            sync.Mutex
}

// newProgressBar возвращает nil, если вывод не задан; все методы nil-безопасны.
func newProgressBar(out io.Writer, prefix string, total int64) *progressBar {
	if out == nil {
		return nil
	}
	return &progressBar{
		out:    out,
		prefix: prefix,
		total:  total,
	}
}

// Write учитывает отправленные байты; используется как приёмник io.TeeReader.
func (p *progressBar) Write(b []byte) (int, error) {
	if p == nil || len(b) == 0 {
		return len(b), nil
	}
	p.mu.Lock()
	if p.finished {
		p.mu.Unlock()
		return len(b), nil
	}
	p.current += int64(len(b))
	p.mu.Unlock()
	p.render(false)
	return len(b), nil
}

func (p *progressBar) render(force bool) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	now := time.Now()
	if !force && now.Sub(p.lastRender) < progressRenderPeriod {
		return
	}
	p.lastRender = now
	p.printLocked(p.lineLocked(), "")
}

// printLocked перерисовывает строку, затирая хвост предыдущей.
func (p *progressBar) printLocked(line, end string) {
	padding := ""
	if p.lastLineWidth > len(line) {
		padding = strings.Repeat(" ", p.lastLineWidth-len(line))
	}
	p.lastLineWidth = len(line)
	fmt.Fprintf(p.out, "\r%s%s%s", line, padding, end)
}

func (p *progressBar) lineLocked() string {
	var builder strings.Builder
	builder.Grow(len(p.prefix) + 64)
	builder.WriteString(p.prefix)
	builder.WriteByte(' ')

	if p.total <= 0 {
		builder.WriteString(humanBytes(p.current))
		builder.WriteString(" sent")
		return builder.String()
	}

	ratio := min(float64(p.current)/float64(p.total), 1)
	filled := min(int(ratio*float64(progressBarWidth)+0.5), progressBarWidth)
	builder.WriteByte('[')
	builder.WriteString(strings.Repeat("=", filled))
	builder.WriteString(strings.Repeat(" ", progressBarWidth-filled))
	builder.WriteString("] ")
	builder.WriteString(fmt.Sprintf("%3d%% ", int(ratio*100+0.5)))
	builder.WriteString(humanBytes(p.current))
	builder.WriteByte('/')
	builder.WriteString(humanBytes(p.total))

	return builder.String()
}

// Finish завершает строку отметкой об итоге загрузки.
func (p *progressBar) Finish(status string, err error) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true

	suffix := " ✓ " + status
	if err != nil {
		suffix = fmt.Sprintf(" ✗ %v", err)
	}
	p.printLocked(p.lineLocked()+suffix, "\n")
}

func humanBytes(v int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}
	value := float64(v)
	unit := 0
	for value >= 1024 && unit < len(units)-1 {
		value /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", v, units[unit])
	}
	return fmt.Sprintf("%.1f %s", value, units[unit])
}
