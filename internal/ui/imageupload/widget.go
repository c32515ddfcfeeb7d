// Package imageupload is the image capture widget of the listing form: it
// reads one local file, checks its size, turns it into a data URL and hands
// it to a callback.
package imageupload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/ui/notify"
)

const (
	DefaultLabel     = "Image"
	DefaultObjectFit = "cover"
	DefaultAccept    = ".png, .jpg, .jpeg, .gif"
	DefaultSizeLimit = 10 * 1024 * 1024

	MsgUnsupportedType = "File type is not supported."
	MsgUpdateFailed    = "Unable to update image"

	triggerIdle = "Upload"
	triggerBusy = "Uploading..."
)

var (
	ErrBusy            = errors.New("image upload already in progress")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrUnsupportedType = errors.New("file type not accepted")
)

// PendingImage is the picture currently shown by the widget.
type PendingImage struct {
	Data        string // data URL or remote URL; "" shows the placeholder
	DisplayName string
}

// Config configures a Widget. Zero values take the defaults above.
type Config struct {
	Label           string
	InitialImage    *PendingImage
	ObjectFit       string
	Accept          string
	SizeLimit       int64
	OnChangePicture func(ctx context.Context, dataURL string) error
	// RestoreImage supplies the picture shown after a failed callback. Nil
	// restores the preview from before the selection.
	RestoreImage    func() *PendingImage
	Notifier        notify.Notifier
}

// Widget is safe for concurrent use. Only one selection is processed at a
// time; Select returns ErrBusy while a previous one is in flight.
type Widget struct {
	cfg    Config
	accept acceptList

	mu    sync.Mutex
	image *PendingImage
	busy  bool
	err   string
}

func New(cfg Config) *Widget {
	if cfg.Label == "" {
		cfg.Label = DefaultLabel
	}
	if cfg.ObjectFit == "" {
		cfg.ObjectFit = DefaultObjectFit
	}
	if cfg.Accept == "" {
		cfg.Accept = DefaultAccept
	}
	if cfg.SizeLimit <= 0 {
		cfg.SizeLimit = DefaultSizeLimit
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Nop{}
	}

	w := &Widget{cfg: cfg, accept: parseAccept(cfg.Accept)}
	if cfg.InitialImage != nil {
		img := *cfg.InitialImage
		w.image = &img
	}
	return w
}

// Select handles a file selection. Only the first file is used and an
// empty selection does nothing. Oversized or unaccepted files set Error and
// never reach the callback. When the callback fails the previous preview,
// or the one given by RestoreImage, is shown again.
func (w *Widget) Select(ctx context.Context, files ...File) error {
	if len(files) == 0 || files[0] == nil {
		return nil
	}
	file := files[0]

	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return ErrBusy
	}
	if file.Size() > w.cfg.SizeLimit {
		w.err = sizeMessage(w.cfg.SizeLimit)
		w.mu.Unlock()
		return ErrFileTooLarge
	}
	if !w.accept.allows(file.Name()) {
		w.err = MsgUnsupportedType
		w.mu.Unlock()
		return ErrUnsupportedType
	}
	w.err = ""
	w.busy = true
	previous := w.image
	w.mu.Unlock()

	dataURL, err := readDataURL(file, w.cfg.SizeLimit)
	if err == nil {
		w.mu.Lock()
		w.image = &PendingImage{Data: dataURL, DisplayName: displayName(file.Name())}
		w.mu.Unlock()

		if w.cfg.OnChangePicture != nil {
			err = w.cfg.OnChangePicture(ctx, dataURL)
		}
	}

	if err != nil && w.cfg.RestoreImage != nil {
		previous = nil
		if img := w.cfg.RestoreImage(); img != nil {
			restored := *img
			previous = &restored
		}
	}

	w.mu.Lock()
	w.busy = false
	if err != nil {
		w.image = previous
	}
	w.mu.Unlock()

	if err != nil {
		w.cfg.Notifier.Error("", MsgUpdateFailed)
		return err
	}
	return nil
}

func (w *Widget) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// Error is the inline message shown under the trigger, or "".
func (w *Widget) Error() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Image returns a copy of the shown picture, or nil.
func (w *Widget) Image() *PendingImage {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.image == nil {
		return nil
	}
	img := *w.image
	return &img
}

func (w *Widget) Label() string { return w.cfg.Label }

func (w *Widget) ObjectFit() string { return w.cfg.ObjectFit }

// TriggerText is the placeholder caption of the drop target.
func (w *Widget) TriggerText() string {
	if w.Busy() {
		return triggerBusy
	}
	return triggerIdle
}

func readDataURL(f File, limit int64) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", f.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Name(), err)
	}
	if int64(len(data)) > limit {
		return "", ErrFileTooLarge
	}
	return domain.EncodeDataURL(mediaType(f.Name()), data), nil
}

// mediaType mirrors what a browser reports for a picked file: the type
// registered for its extension.
func mediaType(name string) string {
	t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if t == "" {
		return "application/octet-stream"
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return t
}

func displayName(name string) string {
	base := filepath.Base(name)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if base == "" || base == "/" {
		return "New file"
	}
	return base
}

func sizeMessage(limit int64) string {
	const mib = 1024 * 1024
	if limit%mib == 0 {
		return fmt.Sprintf("File size is exceeding %dMB.", limit/mib)
	}
	return fmt.Sprintf("File size is exceeding %d bytes.", limit)
}

// acceptList matches names against an HTML accept attribute: extensions
// (".png") or media types ("image/png", "image/*").
type acceptList []string

func parseAccept(s string) acceptList {
	var out acceptList
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (a acceptList) allows(name string) bool {
	if len(a) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	typ := mediaType(name)
	for _, p := range a {
		switch {
		case strings.HasPrefix(p, "."):
			if p == ext {
				return true
			}
		case strings.HasSuffix(p, "/*"):
			if strings.HasPrefix(typ, strings.TrimSuffix(p, "*")) {
				return true
			}
		case p == typ:
			return true
		}
	}
	return false
}
