// Package expose makes the Kubeflow gateway reachable from outside the
// cluster, either through a metallb-backed LoadBalancer Service or, when a
// hostname is known up front, through an Ingress bound to that hostname.
package expose

import (
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

const (
	// Namespace is the model namespace the gateway lives in.
	Namespace = "kubeflow"

	// ServiceName is the LoadBalancer Service created on the dynamic branch.
	ServiceName = "kubeflow-gateway"

	// gatewaySelector matches the istio ingress gateway workload deployed
	// by the bundle.
	gatewaySelector = "istio-ingressgateway"

	// addressPool is the metallb pool the Service draws its IP from.
	addressPool = "default"

	// tlsSecretName is a placeholder; no certificate material is
	// provisioned here. Operators terminate TLS as a follow-up.
	tlsSecretName = "kubeflow-tls"
)

// NoAddressError reports that the gateway Service had no load-balancer IP
// assigned at read time. metallb may simply not have reconciled yet; the
// caller does not retry.
type NoAddressError struct {
	Service string
}

func (e *NoAddressError) Error() string {
	return fmt.Sprintf("service %s has no load balancer address assigned", e.Service)
}

// Cluster is the subset of the kubectl client the configurator needs.
type Cluster interface {
	Apply(manifest []byte) error
	GetService(namespace, name string) (*corev1.Service, error)
}

// GatewayService builds the LoadBalancer Service fronting the gateway,
// forwarding external port 8000 to the gateway's port 80.
func GatewayService() *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      ServiceName,
			Namespace: Namespace,
			Annotations: map[string]string{
				"metallb.universe.tf/address-pool": addressPool,
			},
		},
		Spec: corev1.ServiceSpec{
			Type: corev1.ServiceTypeLoadBalancer,
			Selector: map[string]string{
				"app.kubernetes.io/name": gatewaySelector,
			},
			Ports: []corev1.ServicePort{
				{
					Name:       "http",
					Port:       8000,
					TargetPort: intstr.FromInt32(80),
				},
			},
		},
	}
}

// GatewayIngress builds an Ingress routing everything on the given host to
// the gateway, with a TLS section referencing the placeholder secret.
func GatewayIngress(hostname string) *networkingv1.Ingress {
	pathPrefix := networkingv1.PathTypePrefix
	return &networkingv1.Ingress{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "networking.k8s.io/v1",
			Kind:       "Ingress",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      "kubeflow-gateway",
			Namespace: Namespace,
		},
		Spec: networkingv1.IngressSpec{
			Rules: []networkingv1.IngressRule{
				{
					Host: hostname,
					IngressRuleValue: networkingv1.IngressRuleValue{
						HTTP: &networkingv1.HTTPIngressRuleValue{
							Paths: []networkingv1.HTTPIngressPath{
								{
									Path:     "/",
									PathType: &pathPrefix,
									Backend: networkingv1.IngressBackend{
										Service: &networkingv1.IngressServiceBackend{
											Name: gatewaySelector,
											Port: networkingv1.ServiceBackendPort{Number: 80},
										},
									},
								},
							},
						},
					},
				},
			},
			TLS: []networkingv1.IngressTLS{
				{
					Hosts:      []string{hostname},
					SecretName: tlsSecretName,
				},
			},
		},
	}
}

// Configure applies the exposure resources and returns the hostname the
// dashboard will be reachable on.
//
// With a static hostname an Ingress is applied and the hostname returned
// as-is. Otherwise the LoadBalancer Service is applied and read back once;
// the assigned IP becomes "<ip>.xip.io", a wildcard-DNS convention that
// needs no registration. The single read relies on the metallb addon having
// reconciled by the time the bundle reaches this stage.
func Configure(cluster Cluster, hostname string) (string, error) {
	if hostname != "" {
		manifest, err := json.Marshal(GatewayIngress(hostname))
		if err != nil {
			return "", fmt.Errorf("failed to encode ingress: %w", err)
		}
		if err := cluster.Apply(manifest); err != nil {
			return "", fmt.Errorf("failed to create ingress: %w", err)
		}
		return hostname, nil
	}

	manifest, err := json.Marshal(GatewayService())
	if err != nil {
		return "", fmt.Errorf("failed to encode gateway service: %w", err)
	}
	if err := cluster.Apply(manifest); err != nil {
		return "", fmt.Errorf("failed to create gateway service: %w", err)
	}

	svc, err := cluster.GetService(Namespace, ServiceName)
	if err != nil {
		return "", err
	}

	ingress := svc.Status.LoadBalancer.Ingress
	if len(ingress) == 0 || ingress[0].IP == "" {
		return "", &NoAddressError{Service: ServiceName}
	}
	return ingress[0].IP + ".xip.io", nil
}
