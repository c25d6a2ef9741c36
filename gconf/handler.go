package gconf

import (
	"reflect"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/x"
)

// OwnedConfig is a configuration that only its owner can change.
type OwnedConfig interface {
	Configuration
	GetOwner() milestone.Address
}

// UpdateConfigurationHandler patches the configuration of a package.
//
// The message must be a pointer to a struct with a Patch field holding the
// same type as the configuration. Every non zero field of the patch replaces
// the stored value. The transaction must be signed by the current owner.
type UpdateConfigurationHandler struct {
	pkg  string
	typ  reflect.Type
	auth x.Authenticator
}

var _ milestone.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a handler for the configuration of
// pkg. conf is only used to learn the configuration type and must be a
// pointer to a struct.
func NewUpdateConfigurationHandler(pkg string, conf OwnedConfig, auth x.Authenticator) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:  pkg,
		typ:  reflect.TypeOf(conf).Elem(),
		auth: auth,
	}
}

func (h UpdateConfigurationHandler) Check(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.CheckResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	return &milestone.CheckResult{}, nil
}

func (h UpdateConfigurationHandler) Deliver(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) (*milestone.DeliverResult, error) {
	if err := h.update(ctx, db, tx); err != nil {
		return nil, err
	}
	milestone.GetLogger(ctx).Info("configuration updated", "pkg", h.pkg)
	return &milestone.DeliverResult{}, nil
}

func (h UpdateConfigurationHandler) update(ctx milestone.Context, db milestone.KVStore, tx milestone.Tx) error {
	current := reflect.New(h.typ).Interface().(OwnedConfig)
	if err := Load(db, h.pkg, current); err != nil {
		return err
	}
	switch owner := current.GetOwner(); {
	case owner == nil:
		return errors.Wrap(errors.ErrUnauthorized, "configuration has no owner")
	case !h.auth.HasAddress(ctx, owner):
		return errors.Wrap(errors.ErrUnauthorized, "configuration owner signature missing")
	}

	msg, err := tx.GetMsg()
	if err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	p, err := patchOf(msg)
	if err != nil {
		return err
	}
	if p.Type() != reflect.PtrTo(h.typ) {
		return errors.Wrapf(errors.ErrType, "patch %s for %s configuration", p.Type(), h.pkg)
	}
	apply(reflect.ValueOf(current).Elem(), p.Elem())
	return Save(db, h.pkg, current)
}

// patchOf returns the Patch field of msg.
func patchOf(msg milestone.Msg) (reflect.Value, error) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, errors.Wrapf(errors.ErrInput, "%T is not a struct pointer", msg)
	}
	p := v.Elem().FieldByName("Patch")
	switch {
	case !p.IsValid() || p.Kind() != reflect.Ptr:
		return reflect.Value{}, errors.Wrapf(errors.ErrInput, "%T has no Patch pointer field", msg)
	case p.IsNil():
		return reflect.Value{}, errors.Wrap(errors.ErrEmpty, "patch")
	}
	return p, nil
}

// apply copies all non zero fields of src into dst.
func apply(dst, src reflect.Value) {
	for i := 0; i < src.NumField(); i++ {
		f := src.Field(i)
		if reflect.DeepEqual(f.Interface(), reflect.Zero(f.Type()).Interface()) {
			continue
		}
		dst.Field(i).Set(f)
	}
}
