package almtest

import (
	"context"
	"fmt"

	"github.com/iov-one/almoner"
)

// Auth is a mock implementing the x.Authenticator interface.
//
// This structure authenticates any of the referenced conditions. You can
// use either Signer or Signers (or both) attributes to reference
// conditions. Each time all signers, regardless of the attribute, are
// considered.
type Auth struct {
	// Signer represents an authentication of a single signer. It is
	// listed after Signers, so with both attributes set Signers[0] is
	// the main signer.
	Signer almoner.Condition

	// Signers represents an authentication of multiple signers.
	Signers []almoner.Condition
}

func (a *Auth) GetConditions(almoner.Context) []almoner.Condition {
	if a.Signer != nil {
		return append(a.Signers, a.Signer)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx almoner.Context, addr almoner.Address) bool {
	for _, s := range a.Signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	if a.Signer == nil {
		return false
	}
	return addr.Equals(a.Signer.Address())
}

// CtxAuth is a mock implementing the x.Authenticator interface.
//
// This implementation is using the context to store and retrieve
// permissions.
type CtxAuth struct {
	// Key used to set and retrieve conditions from the context. For
	// convenience only string type keys are allowed.
	Key string
}

type ctxAuthKey string

func (a *CtxAuth) SetConditions(ctx almoner.Context, permissions ...almoner.Condition) almoner.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), permissions)
}

func (a *CtxAuth) GetConditions(ctx almoner.Context) []almoner.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]almoner.Condition)
	if !ok {
		panic(fmt.Sprintf("instead of []almoner.Condition got %T", val))
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx almoner.Context, addr almoner.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
