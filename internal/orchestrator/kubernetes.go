package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"

	"github.com/prayujt/distributed-streaming/internal/config"
	"github.com/prayujt/distributed-streaming/internal/dispatch"
)

var log = logging.MustGetLogger("log")

const (
	// jobLabel marks the Jobs this service owns; the active-job count
	// only considers Jobs carrying it.
	jobLabel = "app=downloader"

	// namespaceFile is where the service account namespace is mounted
	// in-cluster.
	namespaceFile = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"

	// ttlSeconds is the post-completion cleanup interval for finished
	// Jobs.
	ttlSeconds = int32(120)
)

// Client submits downloader Jobs to a Kubernetes cluster and reports how
// many are currently active. It implements dispatch.Orchestrator.
type Client struct {
	clientset kubernetes.Interface
	namespace string
	settings  *config.Settings
}

// New builds a Kubernetes-backed orchestrator client. In-cluster
// configuration is tried first, then the local kubeconfig, so the
// service can run both as a pod and on a workstation.
func New(settings *config.Settings) (*Client, error) {
	cfg, err := rest.InClusterConfig()
	if err != nil {
		kubeconfig := filepath.Join(homedir.HomeDir(), ".kube", "config")
		cfg, err = clientcmd.BuildConfigFromFlags("", kubeconfig)
		if err != nil {
			return nil, fmt.Errorf("no in-cluster config and no kubeconfig: %w", err)
		}
	}

	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating kubernetes client: %w", err)
	}

	return &Client{
		clientset: clientset,
		namespace: resolveNamespace(settings.Namespace),
		settings:  settings,
	}, nil
}

// resolveNamespace prefers the configured override, then the mounted
// service account namespace, then "default".
func resolveNamespace(override string) string {
	if override != "" {
		return override
	}
	if data, err := os.ReadFile(namespaceFile); err == nil {
		if ns := strings.TrimSpace(string(data)); ns != "" {
			return ns
		}
	}
	return "default"
}

// ActiveJobs counts the downloader Jobs the cluster reports as active
// right now. The count is never cached; admission re-queries before
// every batch.
func (c *Client) ActiveJobs(ctx context.Context) (int, error) {
	jobs, err := c.clientset.BatchV1().Jobs(c.namespace).List(ctx, metav1.ListOptions{
		LabelSelector: jobLabel,
	})
	if err != nil {
		return 0, fmt.Errorf("listing jobs: %w", err)
	}

	active := 0
	for _, job := range jobs.Items {
		if job.Status.Active > 0 {
			active++
		}
	}
	return active, nil
}

// Submit creates one batch/v1 Job for the spec: restart policy Never, a
// short TTL after completion, the library volume mounted at the music
// home, and the unit ids plus provider credentials passed through the
// environment.
func (c *Client) Submit(ctx context.Context, spec dispatch.JobSpec) error {
	backoffLimit := int32(0)
	ttl := ttlSeconds

	job := &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:   spec.Name,
			Labels: map[string]string{"app": "downloader"},
		},
		Spec: batchv1.JobSpec{
			TTLSecondsAfterFinished: &ttl,
			BackoffLimit:            &backoffLimit,
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: map[string]string{"app": "downloader"},
				},
				Spec: corev1.PodSpec{
					RestartPolicy: corev1.RestartPolicyNever,
					Containers: []corev1.Container{
						{
							Name:  "downloader",
							Image: c.settings.DownloaderImage,
							Env:   c.jobEnv(spec),
							VolumeMounts: []corev1.VolumeMount{
								{
									Name:      "music",
									MountPath: c.settings.MusicHome,
								},
							},
						},
					},
					Volumes: []corev1.Volume{
						{
							Name: "music",
							VolumeSource: corev1.VolumeSource{
								PersistentVolumeClaim: &corev1.PersistentVolumeClaimVolumeSource{
									ClaimName: c.settings.StorageClaim,
								},
							},
						},
					},
				},
			},
		},
	}

	if _, err := c.clientset.BatchV1().Jobs(c.namespace).Create(ctx, job, metav1.CreateOptions{}); err != nil {
		return fmt.Errorf("creating job %s: %w", spec.Name, err)
	}

	log.Debugf("created job %s in namespace %s", spec.Name, c.namespace)
	return nil
}

func (c *Client) jobEnv(spec dispatch.JobSpec) []corev1.EnvVar {
	env := []corev1.EnvVar{
		{Name: spec.EnvName(), Value: spec.IDs},
		{Name: "SPOTIFY_CLIENT_ID", Value: c.settings.SpotifyClientID},
		{Name: "SPOTIFY_CLIENT_SECRET", Value: c.settings.SpotifyClientSecret},
		{Name: "MUSIC_HOME", Value: c.settings.MusicHome},
	}
	if c.settings.HasPodcastCredentials() {
		env = append(env,
			corev1.EnvVar{Name: "PODCAST_API_KEY", Value: c.settings.PodcastAPIKey},
			corev1.EnvVar{Name: "PODCAST_API_SECRET", Value: c.settings.PodcastAPISecret},
		)
	}
	if c.settings.RescanURL != "" {
		env = append(env,
			corev1.EnvVar{Name: "RESCAN_URL", Value: c.settings.RescanURL},
			corev1.EnvVar{Name: "RESCAN_TOKEN", Value: c.settings.RescanToken},
		)
	}
	return env
}
