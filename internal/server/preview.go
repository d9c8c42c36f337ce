package server

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"net/http"
	"time"

	"github.com/ayusman/airnav/internal/engine"
)

// PreviewHandler streams the engine's working buffer as MJPEG, for the
// diagnostic overlay. The stream shows the downsampled frames the
// detector actually sees, not the raw camera image.
type PreviewHandler struct {
	engine *engine.Engine
}

// NewPreviewHandler creates a PreviewHandler over the given engine.
func NewPreviewHandler(e *engine.Engine) *PreviewHandler {
	return &PreviewHandler{engine: e}
}

// ServeHTTP streams MJPEG frames to the client until it disconnects.
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var buf bytes.Buffer
	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		snap := h.engine.Snapshot()
		if snap == nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		buf.Reset()
		if err := jpeg.Encode(&buf, snap, &jpeg.Options{Quality: 70}); err != nil {
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.Bytes())
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}
