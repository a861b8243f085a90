package addons

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and returns scripted errors.
type fakeRunner struct {
	calls [][]string
	fail  map[string]error
}

func (f *fakeRunner) Run(name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if len(args) > 0 {
		if err, ok := f.fail[args[0]]; ok {
			return "", err
		}
	}
	return "", nil
}

func (f *fakeRunner) RunInput(stdin []byte, name string, args ...string) (string, error) {
	return f.Run(name, args...)
}

func TestAddonSpec(t *testing.T) {
	assert.Equal(t, "dns", Addon{Name: "dns"}.Spec())
	assert.Equal(t, "metallb:10.0.0.1-10.0.0.9", Addon{Name: "metallb", Arg: "10.0.0.1-10.0.0.9"}.Spec())
}

func TestListDynamicHostnameIncludesMetallb(t *testing.T) {
	list := List("10.64.140.43-10.64.140.49", false)

	require.Len(t, list, 7)
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"dns", "storage", "dashboard", "ingress", "rbac", "juju", "metallb"}, names)
	assert.Equal(t, "10.64.140.43-10.64.140.49", list[6].Arg)
}

func TestListStaticHostnameExcludesMetallb(t *testing.T) {
	list := List("10.64.140.43-10.64.140.49", true)

	require.Len(t, list, 6)
	for _, a := range list {
		assert.NotEqual(t, "metallb", a.Name)
	}
}

func TestEnableInvokesWrapperInOrder(t *testing.T) {
	f := &fakeRunner{}

	err := Enable(f, List("1.2.3.4-1.2.3.9", false))
	require.NoError(t, err)

	require.Len(t, f.calls, 7)
	assert.Equal(t, []string{"microk8s-enable.wrapper", "dns"}, f.calls[0])
	assert.Equal(t, []string{"microk8s-enable.wrapper", "metallb:1.2.3.4-1.2.3.9"}, f.calls[6])
}

func TestEnableStopsAtFirstFailure(t *testing.T) {
	f := &fakeRunner{fail: map[string]error{"dashboard": errors.New("snap exploded")}}

	err := Enable(f, List("", true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard")
	assert.Len(t, f.calls, 3, "no addon after the failing one is attempted")
}

func TestDisableRunsInReverseAndCollectsErrors(t *testing.T) {
	f := &fakeRunner{fail: map[string]error{"rbac": errors.New("nope")}}

	errs := Disable(f, List("", true))

	require.Len(t, f.calls, 6)
	assert.Equal(t, []string{"microk8s-disable.wrapper", "juju"}, f.calls[0])
	assert.Equal(t, []string{"microk8s-disable.wrapper", "dns"}, f.calls[5])
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "rbac")
}
