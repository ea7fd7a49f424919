package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/neataffiliates/signup-feed-service/internal/forms"
	"github.com/neataffiliates/signup-feed-service/pkg/httpclient"
	"github.com/neataffiliates/signup-feed-service/pkg/logging"
)

// signup drives a brand signup form against a running translator service.
// Useful for smoke-testing a feed integration without a browser:
//
//	signup -server http://localhost:8080 -instance realm \
//	  -field username=affiliate42 -field email=a@example.com \
//	  -payment crypto -field crypto_wallet=abc123
func main() {
	godotenv.Load()

	var (
		serverURL   = flag.String("server", "http://localhost:8080", "translator service base URL")
		instance    = flag.String("instance", "realm", "brand form: realm, throne or bluffbet")
		payment     = flag.String("payment", "", "payment option, e.g. bank, crypto, papel, jetbahis")
		autoInvoice = flag.Bool("auto-invoice", false, "enable the invoicing sub-form")
		timeout     = flag.Duration("timeout", 30*time.Second, "request timeout")
	)
	var fields fieldFlags
	flag.Var(&fields, "field", "form field as name=value, repeatable")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	schema, err := schemaFor(*instance)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	form := forms.New(schema)
	for _, f := range fields {
		form.Set(f.name, f.value)
	}
	if *payment != "" {
		if err := form.SelectPayment(*payment); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	form.SetAutoInvoice(*autoInvoice)

	httpClient := httpclient.NewHTTPClient(httpclient.DefaultClientConfig(), *timeout)
	client := forms.NewClient(*serverURL, httpClient, logging.NewZapLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := client.Submit(ctx, form)
	if err != nil {
		fmt.Fprintf(os.Stderr, "signup failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("status: %d\n", result.StatusCode)
	fmt.Printf("body: %s\n", result.Body)
	if !result.OK {
		os.Exit(1)
	}
}

func schemaFor(instance string) (forms.FormSchema, error) {
	switch strings.ToLower(instance) {
	case "realm":
		return forms.RealmSchema(), nil
	case "throne":
		return forms.ThroneSchema(), nil
	case "bluffbet":
		return forms.BluffbetSchema(), nil
	default:
		return forms.FormSchema{}, fmt.Errorf("unknown instance %q: want realm, throne or bluffbet", instance)
	}
}

type fieldFlag struct {
	name  string
	value string
}

type fieldFlags []fieldFlag

func (f *fieldFlags) String() string {
	parts := make([]string, len(*f))
	for i, field := range *f {
		parts[i] = field.name + "=" + field.value
	}
	return strings.Join(parts, ",")
}

func (f *fieldFlags) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return fmt.Errorf("invalid field %q: want name=value", raw)
	}
	*f = append(*f, fieldFlag{name: name, value: value})
	return nil
}
