package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"portprowler/config"
	"portprowler/netutil"
	"portprowler/output"
	"portprowler/port"
	"portprowler/progress"
	"portprowler/prompt"
	"portprowler/scanner"
)

const outDir = "result"

func main() {
	target := flag.String("target", "", "domain name or IP address to scan (prompted if empty)")
	startSpec := flag.String("start", "", "first port of the range (prompted if empty)")
	endSpec := flag.String("end", "", "last port of the range (prompted if empty)")
	rangeSpec := flag.String("p", "", "port range as N or A-B; overrides -start and -end")
	workers := flag.Int("c", 100, "worker count")
	to := flag.Duration("t", time.Second, "per-probe connect timeout")
	verbose := flag.Bool("v", false, "verbose logging")
	fileOut := flag.String("f", "", "also write the report to result/<file> (overwrite, atomic)")
	cfgPath := flag.String("config", "", "optional YAML config file")
	noProgress := flag.Bool("no-progress", false, "disable the progress bar")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	// flags given on the command line win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "c":
			cfg.Workers = *workers
		case "t":
			cfg.Timeout = *to
		case "v":
			cfg.Verbose = *verbose
		case "f":
			cfg.Output = *fileOut
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cfg.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *rangeSpec != "" {
		r, err := port.ParseRange(*rangeSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: -p: %v\n", err)
			os.Exit(2)
		}
		*startSpec = strconv.Itoa(int(r.Start))
		*endSpec = strconv.Itoa(int(r.End))
	}

	in, err := collectInput(*target, *startSpec, *endSpec, os.Stdin, os.Stdout)
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(os.Stderr, "\nerror: input closed before target and ports were given")
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(2)
	}

	svc, err := cfg.ServiceTable()
	if err != nil {
		log.WithError(err).Warn("services file unreadable, using built-in names")
	}
	log.WithField("entries", svc.Len()).Debug("service table loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mcfg := scanner.Config{
		Workers:  cfg.Workers,
		Timeout:  cfg.Timeout,
		Reverse:  netutil.NewReverseResolver(netutil.DefaultResolvConf, 0, log),
		Services: svc,
		Log:      log,
		// address lines go out before the progress bar starts
		Resolved: func(rep *port.Report) { output.PrintHeader(os.Stdout, rep) },
	}
	if !*noProgress {
		mcfg.Progress = progress.New(os.Stderr)
	}

	output.PrintBanner(os.Stdout, in.Target, in.Range)

	rep, err := scanner.NewManager(mcfg).Scan(ctx, in.Target, in.Range)
	if err != nil {
		if errors.Is(err, scanner.ErrResolution) {
			fmt.Fprintf(os.Stderr, "failed to resolve target: %v\n", err)
			os.Exit(4)
		}
		fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
		os.Exit(4)
	}

	output.PrintSummary(os.Stdout, rep)

	if cfg.Output != "" {
		var buf bytes.Buffer
		output.PrintReport(&buf, rep)
		outPath := filepath.Join(outDir, filepath.Base(cfg.Output))
		if err := output.WriteAtomic(outPath, buf.Bytes()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write output file: %v\n", err)
			os.Exit(4)
		}
		log.WithField("path", outPath).Info("report written")
	}
}

// collectInput takes target and ports from flags and prompts for whatever is
// missing. Interactive mode is announced with the title line.
func collectInput(target, startSpec, endSpec string, stdin io.Reader, stdout io.Writer) (prompt.Input, error) {
	var in prompt.Input
	p := prompt.New(stdin, stdout)
	if target == "" || startSpec == "" || endSpec == "" {
		fmt.Fprintln(stdout, "=== Port Scanner ===")
	}

	in.Target = target
	if in.Target == "" {
		t, err := p.Target()
		if err != nil {
			return in, err
		}
		in.Target = t
	}

	if startSpec != "" {
		v, err := port.ParsePort(startSpec)
		if err != nil {
			return in, fmt.Errorf("-start: %w", err)
		}
		in.Range.Start = v
	} else {
		v, err := p.StartPort()
		if err != nil {
			return in, err
		}
		in.Range.Start = v
	}

	if endSpec != "" {
		v, err := port.ParsePort(endSpec)
		if err != nil {
			return in, fmt.Errorf("-end: %w", err)
		}
		in.Range.End = v
	} else {
		v, err := p.EndPort(in.Range.Start)
		if err != nil {
			return in, err
		}
		in.Range.End = v
	}

	if err := in.Range.Validate(); err != nil {
		return in, fmt.Errorf("invalid port range: %w", err)
	}
	return in, nil
}
