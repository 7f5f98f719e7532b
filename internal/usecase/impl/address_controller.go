package impl

import (
	"context"
	"log/slog"
	"sync"

	"addrcard/internal/domain/entity"
	"addrcard/internal/domain/service"
	"addrcard/internal/domain/validation"
	"addrcard/internal/errors"
	"addrcard/internal/usecase"
)

// addressController is the address form state machine. All state is guarded
// by mu; store calls run without holding it.
type addressController struct {
	addresses usecase.AddressUsecase
	navigator service.Navigator
	logger    *slog.Logger

	mu            sync.Mutex
	state         usecase.FormState
	fields        entity.AddressFields
	errors        validation.ValidationErrors
	storedVersion entity.SchemaVersion
	outdated      bool
	active        *activation
}

// NewAddressController creates a controller with an empty form
func NewAddressController(addresses usecase.AddressUsecase, navigator service.Navigator, logger *slog.Logger) usecase.AddressController {
	return &addressController{
		addresses: addresses,
		navigator: navigator,
		logger:    logger,
		state:     usecase.FormAbsent,
	}
}

type activation struct {
	controller *addressController
	cancel     context.CancelFunc
	done       chan struct{}
	once       sync.Once
	// prevState is restored when the activation closes before its load applied
	prevState usecase.FormState
	err       error
}

// Activate starts the load-on-focus for one screen activation
func (c *addressController) Activate(ctx context.Context) (usecase.Activation, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return nil, usecase.ErrAlreadyActive
	}

	loadCtx, cancel := context.WithCancel(ctx)
	act := &activation{
		controller: c,
		cancel:     cancel,
		done:       make(chan struct{}),
		prevState:  c.state,
	}
	c.active = act

	// a load never replaces edits or races a running save or delete
	if c.state == usecase.FormAbsent || c.state == usecase.FormLoaded {
		c.state = usecase.FormLoading
	}

	go c.load(loadCtx, act)

	return act, nil
}

func (c *addressController) load(ctx context.Context, act *activation) {
	defer close(act.done)

	loaded, err := c.addresses.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != act || ctx.Err() != nil {
		c.logger.DebugContext(ctx, "Discarding address load of a closed activation")
		act.err = ctx.Err()

		return
	}

	if c.state != usecase.FormLoading {
		c.logger.DebugContext(ctx, "Discarding address load, the form changed meanwhile",
			slog.String("state", string(c.state)),
		)

		return
	}

	if err != nil {
		act.err = err
		c.state = act.prevState

		return
	}

	c.errors = nil
	c.storedVersion = loaded.StoredVersion
	c.outdated = loaded.Outdated

	switch loaded.Status {
	case usecase.LoadLoaded:
		c.state = usecase.FormLoaded
		c.fields = loaded.Fields
	default:
		c.state = usecase.FormAbsent
		c.fields = entity.AddressFields{}
	}
}

// Wait blocks until the load finished or ctx is done
func (a *activation) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		return a.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears the activation down once; a pending load is cancelled and dropped
func (a *activation) Close() {
	a.once.Do(func() {
		c := a.controller

		c.mu.Lock()
		if c.active == a {
			c.active = nil
			if c.state == usecase.FormLoading {
				c.state = a.prevState
			}
		}
		c.mu.Unlock()

		a.cancel()
	})
}

func (c *addressController) Edit(field entity.FieldName, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy() {
		return usecase.ErrBusy
	}

	if err := c.fields.Set(field, value); err != nil {
		return err
	}

	c.errors = c.errors.Without(field)
	c.state = usecase.FormDirty

	return nil
}

func (c *addressController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.state != usecase.FormDirty {
		c.mu.Unlock()

		return usecase.ErrNotModified
	}

	fields := c.fields
	failures, err := c.addresses.Validate(fields)
	if err != nil {
		c.mu.Unlock()

		return err
	}
	if len(failures) > 0 {
		c.errors = failures
		c.mu.Unlock()

		return failures
	}

	c.state = usecase.FormSaving
	c.mu.Unlock()

	err = c.addresses.Save(ctx, fields)

	c.mu.Lock()
	if err != nil {
		c.state = usecase.FormDirty
		c.mu.Unlock()

		return err
	}

	c.state = usecase.FormLoaded
	c.errors = nil
	c.storedVersion = c.addresses.CurrentVersion()
	c.outdated = false
	c.mu.Unlock()

	c.navigator.GoTo(ctx, entity.ScreenQRCode)

	return nil
}

// Delete clears the form before the remove completes and does not restore it
// when the remove fails
func (c *addressController) Delete(ctx context.Context) error {
	c.mu.Lock()
	if c.busy() {
		c.mu.Unlock()

		return usecase.ErrBusy
	}

	c.state = usecase.FormDeleting
	c.fields = entity.AddressFields{}
	c.errors = nil
	c.storedVersion = 0
	c.outdated = false
	c.mu.Unlock()

	err := c.addresses.Delete(ctx)

	c.mu.Lock()
	c.state = usecase.FormAbsent
	c.mu.Unlock()

	if err != nil {
		return errors.Wrap(err, "address form cleared but the stored record may remain")
	}

	return nil
}

func (c *addressController) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != usecase.FormDirty {
		return false
	}

	failures, err := c.addresses.Validate(c.fields)

	return err == nil && len(failures) == 0
}

func (c *addressController) Snapshot() usecase.FormSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	var failures validation.ValidationErrors
	if len(c.errors) > 0 {
		failures = append(failures, c.errors...)
	}

	return usecase.FormSnapshot{
		State:         c.state,
		Fields:        c.fields,
		Errors:        failures,
		Active:        c.active != nil,
		StoredVersion: c.storedVersion,
		Outdated:      c.outdated,
	}
}

func (c *addressController) busy() bool {
	return c.state == usecase.FormSaving || c.state == usecase.FormDeleting
}

type addressControllerFactory struct {
	addresses usecase.AddressUsecase
	navigator service.Navigator
	logger    *slog.Logger
}

// NewAddressControllerFactory creates controllers sharing one address usecase
func NewAddressControllerFactory(addresses usecase.AddressUsecase, navigator service.Navigator, logger *slog.Logger) usecase.AddressControllerFactory {
	return &addressControllerFactory{
		addresses: addresses,
		navigator: navigator,
		logger:    logger,
	}
}

func (f *addressControllerFactory) NewController() usecase.AddressController {
	return NewAddressController(f.addresses, f.navigator, f.logger)
}
