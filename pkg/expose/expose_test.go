package expose

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
)

type fakeCluster struct {
	applied  [][]byte
	service  *corev1.Service
	applyErr error
	getErr   error
}

func (f *fakeCluster) Apply(manifest []byte) error {
	f.applied = append(f.applied, manifest)
	return f.applyErr
}

func (f *fakeCluster) GetService(namespace, name string) (*corev1.Service, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.service, nil
}

func serviceWithIP(ip string) *corev1.Service {
	svc := GatewayService()
	if ip != "" {
		svc.Status.LoadBalancer.Ingress = []corev1.LoadBalancerIngress{{IP: ip}}
	}
	return svc
}

func TestGatewayService(t *testing.T) {
	svc := GatewayService()

	assert.Equal(t, "Service", svc.Kind)
	assert.Equal(t, "kubeflow-gateway", svc.Name)
	assert.Equal(t, "kubeflow", svc.Namespace)
	assert.Equal(t, corev1.ServiceTypeLoadBalancer, svc.Spec.Type)
	assert.Equal(t, "default", svc.Annotations["metallb.universe.tf/address-pool"])
	assert.Equal(t, "istio-ingressgateway", svc.Spec.Selector["app.kubernetes.io/name"])

	require.Len(t, svc.Spec.Ports, 1)
	assert.Equal(t, int32(8000), svc.Spec.Ports[0].Port)
	assert.Equal(t, int32(80), svc.Spec.Ports[0].TargetPort.IntVal)
}

func TestGatewayIngress(t *testing.T) {
	ing := GatewayIngress("example.com")

	assert.Equal(t, "Ingress", ing.Kind)
	assert.Equal(t, "kubeflow", ing.Namespace)

	require.Len(t, ing.Spec.Rules, 1)
	rule := ing.Spec.Rules[0]
	assert.Equal(t, "example.com", rule.Host)

	require.NotNil(t, rule.HTTP)
	require.Len(t, rule.HTTP.Paths, 1)
	path := rule.HTTP.Paths[0]
	assert.Equal(t, "/", path.Path)
	assert.Equal(t, networkingv1.PathTypePrefix, *path.PathType)
	assert.Equal(t, "istio-ingressgateway", path.Backend.Service.Name)
	assert.Equal(t, int32(80), path.Backend.Service.Port.Number)

	require.Len(t, ing.Spec.TLS, 1)
	assert.Equal(t, []string{"example.com"}, ing.Spec.TLS[0].Hosts)
	assert.Equal(t, "kubeflow-tls", ing.Spec.TLS[0].SecretName)
}

func TestConfigureDynamicBranch(t *testing.T) {
	f := &fakeCluster{service: serviceWithIP("1.2.3.4")}

	hostname, err := Configure(f, "")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4.xip.io", hostname)

	require.Len(t, f.applied, 1)
	var applied corev1.Service
	require.NoError(t, json.Unmarshal(f.applied[0], &applied))
	assert.Equal(t, "kubeflow-gateway", applied.Name)
	assert.Equal(t, corev1.ServiceTypeLoadBalancer, applied.Spec.Type)
}

func TestConfigureDynamicBranchNoAddress(t *testing.T) {
	f := &fakeCluster{service: serviceWithIP("")}

	_, err := Configure(f, "")
	require.Error(t, err)

	var noAddr *NoAddressError
	require.ErrorAs(t, err, &noAddr)
	assert.Equal(t, "kubeflow-gateway", noAddr.Service)
}

func TestConfigureStaticBranch(t *testing.T) {
	f := &fakeCluster{}

	hostname, err := Configure(f, "example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", hostname)

	require.Len(t, f.applied, 1)
	var applied networkingv1.Ingress
	require.NoError(t, json.Unmarshal(f.applied[0], &applied))
	assert.Equal(t, "Ingress", applied.Kind)
	assert.Equal(t, "example.com", applied.Spec.Rules[0].Host)
}

func TestConfigureStaticBranchCreatesNoService(t *testing.T) {
	f := &fakeCluster{}

	_, err := Configure(f, "example.com")
	require.NoError(t, err)

	for _, manifest := range f.applied {
		assert.NotContains(t, string(manifest), `"kind":"Service"`)
	}
}

func TestConfigureApplyFailure(t *testing.T) {
	f := &fakeCluster{applyErr: errors.New("forbidden")}

	_, err := Configure(f, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gateway service")
}

func TestConfigureGetServiceFailure(t *testing.T) {
	f := &fakeCluster{getErr: errors.New("not found")}

	_, err := Configure(f, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
