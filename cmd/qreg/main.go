package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/theapemachine/qreg"
)

var (
	configPath     string
	qubits         int
	gateTokens     []string
	showAmplitudes bool
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "qreg",
	Short: "Run primitive gates on a dense state-vector register",
	Long: `qreg allocates an n-qubit register in |0...0⟩, applies the given gates in
order and prints the probability of measuring 1 on every qubit.

Gates are given as repeated --gate flags: x:T, h:T or cx:C,T.`,
	Example: "  qreg -n 2 -g h:0 -g cx:0,1",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		config, err := qreg.LoadConfig(configPath)
		if err != nil {
			return err
		}

		gates := make([]qreg.Gate, 0, len(gateTokens))
		for _, token := range gateTokens {
			gate, err := qreg.ParseGate(token)
			if err != nil {
				return err
			}
			gates = append(gates, gate)
		}

		reg, err := qreg.NewStateRegister(qubits, config)
		if err != nil {
			return err
		}

		if err := reg.Apply(gates...); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for q := 0; q < reg.QubitCount(); q++ {
			p, err := reg.MeasurementProbability(q)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "P(q%d=1) = %.10f\n", q, p)
		}

		if showAmplitudes {
			for i, a := range reg.Amplitudes() {
				fmt.Fprintf(out, "|%0*b⟩ %+.10f %+.10fi\n", max(reg.QubitCount(), 1), i, real(a), imag(a))
			}
		}

		if verbose {
			for k, v := range reg.Metrics().ExportMetrics() {
				log.Debug("metric", k, v)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (yaml, toml or json)")
	rootCmd.Flags().IntVarP(&qubits, "qubits", "n", 1, "number of qubits")
	rootCmd.Flags().StringArrayVarP(&gateTokens, "gate", "g", nil, "gate to apply, repeatable (x:T, h:T, cx:C,T)")
	rootCmd.Flags().BoolVarP(&showAmplitudes, "amplitudes", "a", false, "print the amplitude vector")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
