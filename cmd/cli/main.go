// Command pg generates and checks passwords locally or against a PassGen server.
package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/and161185/goph-passgen/internal/rpc"
)

// ---- config/token store ----

type tokenFile struct {
	SessionToken string    `json:"session_token"`
	SessionID    string    `json:"session_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "passgen")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "passgen")
}

func tokenPath() string { return filepath.Join(cfgDir(), "session.json") }

func saveToken(tf tokenFile) error {
	if err := os.MkdirAll(cfgDir(), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(tokenPath(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tf)
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.SessionToken == "" || time.Now().After(tf.ExpiresAt) {
		return "", errors.New("no valid session (run: pg session)")
	}
	return tf.SessionToken, nil
}

// ---- grpc dial ----

type bearerCreds struct {
	token  string
	secure bool
}

func (b bearerCreds) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + b.token}, nil
}
func (b bearerCreds) RequireTransportSecurity() bool { return b.secure }

func loadTLS(caPath string, insecureSkip bool) (credentials.TransportCredentials, error) {
	if insecureSkip {
		return credentials.NewTLS(&tls.Config{InsecureSkipVerify: true}), nil
	}
	if caPath == "" {
		return credentials.NewClientTLSFromCert(nil, ""), nil
	}
	pem, err := os.ReadFile(caPath)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.New("bad CA cert")
	}
	return credentials.NewTLS(&tls.Config{RootCAs: pool}), nil
}

type dialOpts struct {
	addr      string
	caPath    string
	insecure  bool
	plaintext bool
}

func dial(ctx context.Context, o dialOpts, bearer string, extra ...grpc.DialOption) (*grpc.ClientConn, *rpc.Client, error) {
	opts := append([]grpc.DialOption{}, extra...)
	if o.plaintext {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	} else {
		creds, err := loadTLS(o.caPath, o.insecure)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, grpc.WithTransportCredentials(creds))
	}
	if bearer != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(bearerCreds{token: bearer, secure: !o.plaintext}))
	}
	//nolint:staticcheck // DialContext is supported through 1.x
	cc, err := grpc.DialContext(ctx, o.addr, opts...)
	if err != nil {
		return nil, nil, err
	}
	return cc, rpc.NewClient(cc), nil
}

// ---- utils ----

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func usage() {
	fmt.Fprintf(os.Stderr, `pg CLI
Usage:
  pg [-addr HOST:PORT] [-cacert file | -insecure | -plaintext] <cmd> [args]

Local commands:
  gen        [-length N] [-upper] [-lower] [-digits] [-symbols] [-no-ambiguous] [-custom S] [-count N] [-json]
  phrase     [-words N] [-sep C] [-capitalize] [-json]
  check      [-json] <password>
  version

Remote commands:
  session                                     (saves session token)
  remote-gen [gen flags] [-mode random|passphrase -words N -sep C -capitalize]
  history    [-csv] [-clear]
`)
	os.Exit(2)
}

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands and configures TLS/session for RPC calls.
func main() {
	addr := flag.String("addr", "localhost:8443", "server addr")
	caPath := flag.String("cacert", "", "CA cert (PEM)")
	insecureSkip := flag.Bool("insecure", false, "skip cert verify (dev)")
	plaintext := flag.Bool("plaintext", false, "connect without TLS (dev)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd, args := flag.Arg(0), flag.Args()[1:]
	o := dialOpts{addr: *addr, caPath: *caPath, insecure: *insecureSkip, plaintext: *plaintext}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch cmd {
	case "version":
		fmt.Printf("pg %s (%s)\n", version, buildDate)
	case "gen":
		err = cmdGen(args, os.Stdout)
	case "phrase":
		err = cmdPhrase(args, os.Stdout)
	case "check":
		err = cmdCheck(args, os.Stdout)
	case "session":
		err = withClient(ctx, o, "", func(c *rpc.Client) error { return cmdSession(ctx, c, os.Stdout) })
	case "remote-gen":
		token, _ := loadToken()
		err = withClient(ctx, o, token, func(c *rpc.Client) error { return cmdRemoteGen(ctx, c, args, os.Stdout) })
	case "history":
		var token string
		if token, err = loadToken(); err == nil {
			err = withClient(ctx, o, token, func(c *rpc.Client) error { return cmdHistory(ctx, c, args, os.Stdout) })
		}
	default:
		usage()
	}
	if err != nil {
		fail(err)
	}
}

// withClient dials, attaching token when non-empty, and runs fn.
func withClient(ctx context.Context, o dialOpts, token string, fn func(*rpc.Client) error) error {
	cc, c, err := dial(ctx, o, token)
	if err != nil {
		return err
	}
	defer cc.Close()
	return fn(c)
}

// ---- helpers ----

func fail(err error) {
	if s, ok := status.FromError(err); ok {
		fmt.Fprintf(os.Stderr, "rpc error: code=%s msg=%s\n", s.Code(), s.Message())
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
