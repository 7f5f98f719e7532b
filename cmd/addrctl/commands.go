package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"addrcard/internal/domain/entity"
	"addrcard/internal/domain/service"
	"addrcard/internal/domain/validation"
	"addrcard/internal/infra/i18n"
	"addrcard/internal/usecase"
	"addrcard/internal/util"

	"github.com/pkg/errors"
)

var (
	errInvalidForm  = errors.New("address not saved, fix the fields above")
	errNothingToSet = errors.New("no field given, e.g. -firstName John")
	errNoRenderable = errors.New("no current address to encode")
)

type cli struct {
	addresses   usecase.AddressUsecase
	controllers usecase.AddressControllerFactory
	payloads    usecase.PayloadUsecase
	translator  *i18n.Translator
	out         io.Writer
}

func (c *cli) labels(lang string) service.Labels {
	return c.translator.Localizer(lang)
}

func (c *cli) show(ctx context.Context) error {
	loaded, err := c.addresses.Load(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "state: %s\n", loaded.Status)
	if loaded.Status != usecase.LoadLoaded {
		return nil
	}

	if loaded.HasVersion {
		fmt.Fprintf(c.out, "version: %d\n", loaded.StoredVersion)
	} else {
		fmt.Fprintln(c.out, "version: none")
	}
	if loaded.Outdated {
		fmt.Fprintln(c.out, "outdated: yes")
	}

	labels := c.labels("")
	for _, field := range entity.AllFields() {
		value, _ := loaded.Fields.Get(field)
		fmt.Fprintf(c.out, "  %-14s %s\n", labels.T(i18n.LabelKey(field))+":", value)
	}

	return nil
}

func (c *cli) set(ctx context.Context, edits map[entity.FieldName]string, lang string) error {
	if len(edits) == 0 {
		return errNothingToSet
	}

	controller := c.controllers.NewController()
	activation, err := controller.Activate(ctx)
	if err != nil {
		return err
	}
	defer activation.Close()

	// Unedited fields keep their stored values, so the load has to succeed
	if err := activation.Wait(ctx); err != nil {
		return errors.Wrap(err, "failed to load the stored address")
	}

	for _, field := range entity.AllFields() {
		value, ok := edits[field]
		if !ok {
			continue
		}
		if err := controller.Edit(field, value); err != nil {
			return err
		}
	}

	err = controller.Submit(ctx)

	var failures validation.ValidationErrors
	if errors.As(err, &failures) {
		labels := c.labels(lang)
		for _, failure := range failures {
			fmt.Fprintf(c.out, "  %s: %s\n", labels.T(i18n.LabelKey(failure.Field)), labels.T(i18n.ReasonKey(failure.Reason)))
		}

		return errInvalidForm
	}

	return err
}

func (c *cli) delete(ctx context.Context) error {
	if err := c.controllers.NewController().Delete(ctx); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "deleted")

	return nil
}

func (c *cli) payload(ctx context.Context) error {
	resolution, err := c.payloads.Resolve(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "status: %s\n", resolution.Status)
	if resolution.Renderable() {
		fmt.Fprintf(c.out, "%s\n", resolution.Payload)
	}

	return nil
}

func (c *cli) qr(ctx context.Context, output string, size int, lang string) error {
	image, resolution, err := c.payloads.Render(ctx, size)
	if errors.Is(err, usecase.ErrNotRenderable) {
		labels := c.labels(lang)
		if resolution.Status == entity.PayloadOutdated {
			fmt.Fprintln(c.out, labels.T(i18n.KeyOutdated))
		} else {
			fmt.Fprintln(c.out, labels.T(i18n.KeyNoAddress))
		}

		return errNoRenderable
	}
	if err != nil {
		return err
	}

	if err := util.WriteFileAtomic(output, image, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", output)
	}

	fmt.Fprintf(c.out, "wrote %s (%s, sha256 %s)\n", output, util.FormatBytes(int64(len(image))), util.Checksum(image))

	return nil
}

func (c *cli) form(lang string) error {
	rules, err := c.addresses.Rules()
	if err != nil {
		return err
	}

	labels := c.labels(lang)
	fmt.Fprintf(c.out, "locale: %s (available: %s)\n", labels.Locale(), strings.Join(c.translator.Locales(), ", "))
	fmt.Fprintf(c.out, "version: %d\n", c.addresses.CurrentVersion())
	for _, fieldRule := range rules {
		required := ""
		if fieldRule.Rule.Required {
			required = " *"
		}
		fmt.Fprintf(c.out, "  %-14s %s (%s)%s\n",
			string(fieldRule.Field),
			labels.T(i18n.LabelKey(fieldRule.Field)),
			labels.T(i18n.PlaceholderKey(fieldRule.Field)),
			required,
		)
	}
	fmt.Fprintf(c.out, "actions: %s | %s\n", labels.T(i18n.KeySave), labels.T(i18n.KeyDeleteData))

	return nil
}

