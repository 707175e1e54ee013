package cmd

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/klog/v2"
	"k8s.io/klog/v2/textlogger"
	"sigs.k8s.io/yaml"

	"github.com/kiali/kiali-qe-go/pkg/config"
	"github.com/kiali/kiali-qe-go/pkg/entity"
	"github.com/kiali/kiali-qe-go/pkg/filter"
	"github.com/kiali/kiali-qe-go/pkg/kiali"
	"github.com/kiali/kiali-qe-go/pkg/openshift"
	"github.com/kiali/kiali-qe-go/pkg/version"
)

const examples = `
# list the services the console reports for a namespace
kiali-qe services --namespace bookinfo

# list Istio config objects whose name contains "reviews"
kiali-qe istio-config --namespace bookinfo reviews

# reconcile console listings against the cluster API
kiali-qe check --namespace bookinfo
`

type QEOptions struct {
	Version              bool
	LogLevel             int
	KialiURL             string
	KialiInsecure        bool
	CertificateAuthority string
	BearerToken          string
	Kubeconfig           string
	Namespaces           []string

	ConfigPath   string
	StaticConfig *config.StaticConfig

	genericiooptions.IOStreams
}

func NewQEOptions(streams genericiooptions.IOStreams) *QEOptions {
	return &QEOptions{
		IOStreams:    streams,
		StaticConfig: config.Default(),
	}
}

func NewKialiQE(streams genericiooptions.IOStreams) *cobra.Command {
	o := NewQEOptions(streams)
	cmd := &cobra.Command{
		Use:     "kiali-qe [command] [options]",
		Short:   "Service mesh console QE suite",
		Long:    "Lists service mesh entities from the Kiali console API and the cluster API and reconciles them.",
		Example: examples,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return o.Complete(c)
		},
		RunE: func(c *cobra.Command, args []string) error {
			if o.Version {
				_, _ = fmt.Fprintf(o.Out, "%s\n", version.Version)
				return nil
			}
			return c.Help()
		},
	}

	cmd.Flags().BoolVar(&o.Version, "version", o.Version, "Print version information and quit")
	cmd.PersistentFlags().IntVar(&o.LogLevel, "log-level", o.LogLevel, "Set the log level (from 0 to 9)")
	cmd.PersistentFlags().StringVar(&o.ConfigPath, "config", o.ConfigPath, "Path of the config file.")
	cmd.PersistentFlags().StringVar(&o.KialiURL, "kiali-url", o.KialiURL, "Base URL of the Kiali console API")
	cmd.PersistentFlags().BoolVar(&o.KialiInsecure, "kiali-insecure", o.KialiInsecure, "If true, skip TLS verification against the Kiali console")
	cmd.PersistentFlags().StringVar(&o.CertificateAuthority, "certificate-authority", o.CertificateAuthority, "Certificate authority path to verify the Kiali console certificate")
	cmd.PersistentFlags().StringVar(&o.BearerToken, "bearer-token", o.BearerToken, "Bearer token for the Kiali console API")
	cmd.PersistentFlags().StringVar(&o.Kubeconfig, "kubeconfig", o.Kubeconfig, "Path to the kubeconfig file to use for the cluster API")
	cmd.PersistentFlags().StringSliceVar(&o.Namespaces, "namespace", o.Namespaces, "Namespaces to query. Repeatable. Defaults to every namespace the console reports")

	cmd.AddCommand(o.newNamespacesCommand())
	cmd.AddCommand(o.newServicesCommand())
	cmd.AddCommand(o.newWorkloadsCommand())
	cmd.AddCommand(o.newApplicationsCommand())
	cmd.AddCommand(o.newIstioConfigCommand())
	cmd.AddCommand(o.newOverviewCommand())
	cmd.AddCommand(o.newCheckCommand())

	return cmd
}

func (o *QEOptions) Complete(cmd *cobra.Command) error {
	if o.ConfigPath != "" {
		cnf, err := config.Read(o.ConfigPath)
		if err != nil {
			return err
		}
		o.StaticConfig = cnf
	}

	o.loadFlags(cmd)
	o.initializeLogging()

	return o.StaticConfig.Validate()
}

func (o *QEOptions) loadFlags(cmd *cobra.Command) {
	if cmd.Flag("log-level").Changed {
		o.StaticConfig.LogLevel = o.LogLevel
	}
	if cmd.Flag("kiali-url").Changed {
		o.StaticConfig.KialiURL = o.KialiURL
	}
	if cmd.Flag("kiali-insecure").Changed {
		o.StaticConfig.KialiInsecure = o.KialiInsecure
	}
	if cmd.Flag("certificate-authority").Changed {
		o.StaticConfig.CertificateAuthority = o.CertificateAuthority
	}
	if cmd.Flag("bearer-token").Changed {
		o.StaticConfig.BearerToken = o.BearerToken
	}
	if cmd.Flag("kubeconfig").Changed {
		o.StaticConfig.KubeConfig = o.Kubeconfig
	}
	if cmd.Flag("namespace").Changed {
		o.StaticConfig.Namespaces = o.Namespaces
	}
}

func (o *QEOptions) initializeLogging() {
	flagSet := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(flagSet)
	loggerOptions := []textlogger.ConfigOption{textlogger.Output(o.ErrOut)}
	if o.StaticConfig.LogLevel >= 0 {
		loggerOptions = append(loggerOptions, textlogger.Verbosity(o.StaticConfig.LogLevel))
		_ = flagSet.Parse([]string{"--v", strconv.Itoa(o.StaticConfig.LogLevel)})
	}
	logger := textlogger.NewLogger(textlogger.NewConfig(loggerOptions...))
	klog.SetLoggerWithOptions(logger)
}

func (o *QEOptions) kiali() (*kiali.Kiali, error) {
	if o.StaticConfig.KialiURL == "" {
		return nil, fmt.Errorf("kiali_url must be set, use --kiali-url or the config file")
	}
	return kiali.NewKiali(o.StaticConfig), nil
}

func (o *QEOptions) cluster() (*openshift.Client, error) {
	return openshift.NewClient(o.StaticConfig.KubeConfig)
}

func (o *QEOptions) printYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(o.Out, string(data))
	return err
}

func (o *QEOptions) newNamespacesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "namespaces",
		Short: "List the namespaces the console reports",
		RunE: func(c *cobra.Command, args []string) error {
			client, err := o.kiali()
			if err != nil {
				return err
			}
			names, err := client.NamespaceList(c.Context())
			if err != nil {
				return err
			}
			return o.printYAML(names)
		},
	}
}

func (o *QEOptions) newServicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "services [name]...",
		Short: "List services with sidecar and health, filtered by name substrings",
		RunE: func(c *cobra.Command, args []string) error {
			client, err := o.kiali()
			if err != nil {
				return err
			}
			items, err := client.ServiceList(c.Context(), o.StaticConfig.Namespaces, args...)
			if err != nil {
				return err
			}
			return o.printYAML(items)
		},
	}
}

func (o *QEOptions) newWorkloadsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "workloads [name]...",
		Short: "List workloads with type, labels, sidecar and health",
		RunE: func(c *cobra.Command, args []string) error {
			client, err := o.kiali()
			if err != nil {
				return err
			}
			items, err := client.WorkloadList(c.Context(), o.StaticConfig.Namespaces, args...)
			if err != nil {
				return err
			}
			return o.printYAML(items)
		},
	}
}

func (o *QEOptions) newApplicationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "applications [name]...",
		Short: "List applications with sidecar and health",
		RunE: func(c *cobra.Command, args []string) error {
			client, err := o.kiali()
			if err != nil {
				return err
			}
			items, err := client.ApplicationList(c.Context(), o.StaticConfig.Namespaces, args...)
			if err != nil {
				return err
			}
			return o.printYAML(items)
		},
	}
}

func (o *QEOptions) newIstioConfigCommand() *cobra.Command {
	var objectTypes []string
	cmd := &cobra.Command{
		Use:   "istio-config [name]...",
		Short: "List Istio config objects with their validation verdicts",
		RunE: func(c *cobra.Command, args []string) error {
			client, err := o.kiali()
			if err != nil {
				return err
			}
			var filters []filter.Filter
			for _, namespace := range o.StaticConfig.Namespaces {
				filters = append(filters, filter.Filter{Name: filter.Namespace, Value: namespace})
			}
			for _, name := range args {
				filters = append(filters, filter.Filter{Name: filter.IstioName, Value: name})
			}
			for _, objectType := range objectTypes {
				filters = append(filters, filter.Filter{Name: filter.IstioType, Value: objectType})
			}
			items, err := client.IstioConfigList(c.Context(), filters)
			if err != nil {
				return err
			}
			return o.printYAML(items)
		},
	}
	cmd.Flags().StringSliceVar(&objectTypes, "type", objectTypes, "Object type substrings to filter on (e.g. VirtualService). Repeatable")
	return cmd
}

func (o *QEOptions) newOverviewCommand() *cobra.Command {
	overviewType := string(entity.OverviewApps)
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Per-namespace health buckets for apps, services or workloads",
		RunE: func(c *cobra.Command, args []string) error {
			parsed, err := entity.ParseOverviewType(overviewType)
			if err != nil {
				return err
			}
			client, err := o.kiali()
			if err != nil {
				return err
			}
			items, err := client.OverviewList(c.Context(), o.StaticConfig.Namespaces, parsed)
			if err != nil {
				return err
			}
			return o.printYAML(items)
		},
	}
	cmd.Flags().StringVar(&overviewType, "type", overviewType, "Entity kind to summarize (one of: Apps, Services, Workloads)")
	return cmd
}

func (o *QEOptions) newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Reconcile console listings against the cluster API",
		Long:  "Lists services, workloads, applications and Istio config from both the console API and the cluster API and reports entities present on one side only.",
		RunE: func(c *cobra.Command, args []string) error {
			console, err := o.kiali()
			if err != nil {
				return err
			}
			cluster, err := o.cluster()
			if err != nil {
				return err
			}
			report, err := reconcile(c.Context(), console, cluster, o.StaticConfig.Namespaces)
			if err != nil {
				return err
			}
			if err := o.printYAML(report); err != nil {
				return err
			}
			if !report.Clean() {
				return fmt.Errorf("console and cluster listings disagree")
			}
			_, _ = fmt.Fprintln(o.Out, "console and cluster listings agree")
			return nil
		},
	}
}
