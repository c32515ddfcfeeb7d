// Package listingform holds the state of the listing creation form. It
// validates the fields on every change and runs the image upload and the
// final submit through injected collaborators.
package listingform

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Abdurahmanit/GroupProject/homes-service/internal/home/domain"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/ui/imageupload"
	"github.com/Abdurahmanit/GroupProject/homes-service/internal/ui/notify"
)

const (
	DefaultButtonText = "Submit"

	MsgUploading       = "Uploading..."
	MsgUploadSucceeded = "Successfully uploaded"
	MsgUploadFailed    = "Unable to upload"
	MsgSubmitting      = "Submitting..."
	MsgSubmitSucceeded = "Successfully submitted"
	MsgSubmitFailed    = "Unable to submit"

	submittingLabel  = "Submitting..."
	notANumberSuffix = " must be a number"
)

var (
	ErrBusy         = errors.New("form operation already in progress")
	ErrDisabled     = errors.New("form is disabled")
	ErrInvalid      = errors.New("form has invalid fields")
	ErrUnknownField = errors.New("unknown form field")
	ErrNoUploader   = errors.New("no image uploader configured")
)

// Uploader sends a data URL to the upload relay and returns the public URL.
type Uploader interface {
	Upload(ctx context.Context, dataURL string) (string, error)
}

// SubmitFunc receives the validated listing, image URL included.
type SubmitFunc func(ctx context.Context, home domain.NewHome) error

type Config struct {
	// InitialValues prefills the form; nil starts from an empty listing.
	InitialValues *domain.NewHome
	RedirectPath  string
	ButtonText    string
	OnSubmit      SubmitFunc
	Uploader      Uploader
	Notifier      notify.Notifier
	Navigator     notify.Navigator
}

// Form is safe for concurrent use. Upload and Submit share one in-flight
// guard.
type Form struct {
	cfg Config

	mu         sync.Mutex
	raw        map[string]string
	errs       domain.FieldErrors
	imageURL   string
	busy       bool
	submitting bool
	submitted  bool
}

func New(cfg Config) *Form {
	if cfg.ButtonText == "" {
		cfg.ButtonText = DefaultButtonText
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Nop{}
	}

	initial := domain.NewHome{Guests: 1, Beds: 1, Baths: 1}
	if cfg.InitialValues != nil {
		initial = *cfg.InitialValues
	}

	f := &Form{
		cfg: cfg,
		raw: map[string]string{
			domain.FieldTitle:       initial.Title,
			domain.FieldDescription: initial.Description,
			domain.FieldPrice:       strconv.Itoa(initial.Price),
			domain.FieldGuests:      strconv.Itoa(initial.Guests),
			domain.FieldBeds:        strconv.Itoa(initial.Beds),
			domain.FieldBaths:       strconv.Itoa(initial.Baths),
		},
		imageURL: initial.Image,
	}
	f.validateLocked()
	return f
}

// SetField stores raw user input for one field and revalidates the form.
func (f *Form) SetField(name, raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.raw[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if f.disabledLocked() {
		return ErrDisabled
	}
	f.raw[name] = raw
	f.validateLocked()
	return nil
}

// Errors returns a copy of the current field messages.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

func (f *Form) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errs) == 0
}

// Values returns the parsed fields and the current image URL. Numeric
// fields that do not parse are reported as 0.
func (f *Form) Values() domain.NewHome {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.valuesLocked()
}

func (f *Form) ImageURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.imageURL
}

func (f *Form) SubmitDisabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errs) > 0 || f.disabledLocked()
}

func (f *Form) SubmitLabel() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return submittingLabel
	}
	return f.cfg.ButtonText
}

// Upload relays a data URL chosen in the image widget. An empty payload
// does nothing. On failure the stored URL is cleared.
func (f *Form) Upload(ctx context.Context, dataURL string) error {
	if dataURL == "" {
		return nil
	}
	if f.cfg.Uploader == nil {
		return ErrNoUploader
	}
	if _, err := f.begin(false); err != nil {
		return err
	}

	id := f.cfg.Notifier.Loading(MsgUploading)
	url, err := f.cfg.Uploader.Upload(ctx, dataURL)

	f.mu.Lock()
	f.busy = false
	if err != nil {
		f.imageURL = ""
	} else {
		f.imageURL = url
	}
	f.mu.Unlock()

	if err != nil {
		f.cfg.Notifier.Error(id, MsgUploadFailed)
		return fmt.Errorf("upload image: %w", err)
	}
	f.cfg.Notifier.Success(id, MsgUploadSucceeded)
	return nil
}

// Submit hands the validated listing to OnSubmit. After a successful submit
// the form stays disabled and the navigator is sent to RedirectPath.
func (f *Form) Submit(ctx context.Context) error {
	home, err := f.begin(true)
	if err != nil {
		return err
	}

	id := f.cfg.Notifier.Loading(MsgSubmitting)
	if f.cfg.OnSubmit != nil {
		err = f.cfg.OnSubmit(ctx, home)
	}

	f.mu.Lock()
	f.busy = false
	f.submitting = false
	f.submitted = err == nil
	f.mu.Unlock()

	if err != nil {
		f.cfg.Notifier.Error(id, MsgSubmitFailed)
		return fmt.Errorf("submit listing: %w", err)
	}
	f.cfg.Notifier.Success(id, MsgSubmitSucceeded)
	if f.cfg.RedirectPath != "" && f.cfg.Navigator != nil {
		f.cfg.Navigator.Push(f.cfg.RedirectPath)
	}
	return nil
}

// Widget returns an image widget that uploads through this form and shows
// the current image URL. Upload failures are reported by the form alone, and
// the preview falls back to whatever URL the form still holds.
func (f *Form) Widget() *imageupload.Widget {
	return imageupload.New(imageupload.Config{
		InitialImage:    f.currentImage(),
		OnChangePicture: f.Upload,
		RestoreImage:    f.currentImage,
		Notifier:        notify.Nop{},
	})
}

func (f *Form) currentImage() *imageupload.PendingImage {
	if url := f.ImageURL(); url != "" {
		return &imageupload.PendingImage{Data: url}
	}
	return nil
}

// begin takes the in-flight guard and snapshots the values to work on.
func (f *Form) begin(submit bool) (domain.NewHome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return domain.NewHome{}, ErrBusy
	}
	if f.submitted {
		return domain.NewHome{}, ErrDisabled
	}
	if submit && len(f.errs) > 0 {
		return domain.NewHome{}, ErrInvalid
	}
	f.busy = true
	f.submitting = submit
	return f.valuesLocked(), nil
}

func (f *Form) disabledLocked() bool {
	return f.busy || f.submitted
}

func (f *Form) valuesLocked() domain.NewHome {
	num := func(field string) int {
		n, _ := strconv.Atoi(strings.TrimSpace(f.raw[field]))
		return n
	}
	return domain.NewHome{
		Title:       f.raw[domain.FieldTitle],
		Description: f.raw[domain.FieldDescription],
		Price:       num(domain.FieldPrice),
		Guests:      num(domain.FieldGuests),
		Beds:        num(domain.FieldBeds),
		Baths:       num(domain.FieldBaths),
		Image:       f.imageURL,
	}
}

func (f *Form) validateLocked() {
	errs := f.valuesLocked().Validate()
	for _, field := range []string{domain.FieldPrice, domain.FieldGuests, domain.FieldBeds, domain.FieldBaths} {
		if _, err := strconv.Atoi(strings.TrimSpace(f.raw[field])); err != nil {
			if errs == nil {
				errs = domain.FieldErrors{}
			}
			errs[field] = field + notANumberSuffix
		}
	}
	f.errs = errs
}
