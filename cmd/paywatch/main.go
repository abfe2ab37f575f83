// Command paywatch is a terminal rendition of the PIX payment page: it issues (or reuses) the PIX
// for an order, prints the copy-paste code and countdown, and waits for the payment confirmation.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"neurovita_checkout/internal/paymentview"
	"neurovita_checkout/pkg/logger"

	"github.com/rs/zerolog"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080/v1", "checkout API base URL")
	order := flag.String("order", "", "order id or order number")
	interval := flag.Duration("interval", paymentview.DefaultPollInterval, "payment status polling interval")
	renew := flag.Bool("renew", false, "issue a new code automatically when the current one expires")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	if *order == "" {
		fmt.Fprintln(os.Stderr, "missing -order")
		os.Exit(2)
	}

	log := logger.New(logger.Options{ServiceName: "paywatch", Level: *logLevel, Format: "console", Output: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := watch(ctx, os.Stdout, paymentview.NewClient(*apiURL, nil), *order, *interval, *renew, log); err != nil {
		fmt.Fprintf(os.Stderr, "paywatch: %v\n", err)
		os.Exit(1)
	}
}

func watch(ctx context.Context, out io.Writer, api paymentview.API, order string, interval time.Duration, renew bool, log zerolog.Logger) error {
	var view *paymentview.View
	renderer := &renderer{out: out}
	onChange := func(s paymentview.Snapshot) {
		renderer.render(s)
		if renew && s.State == paymentview.StateExpired {
			go func() {
				if err := view.Regenerate(ctx); err != nil {
					log.Warn().Err(err).Msg("automatic renewal failed")
				}
			}()
		}
	}
	view = paymentview.New(api, order, log, paymentview.WithPollInterval(interval), paymentview.WithOnChange(onChange))

	if err := view.Load(ctx); err != nil {
		return err
	}
	if err := view.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

type renderer struct {
	mu        sync.Mutex
	out       io.Writer
	lastState paymentview.State
}

func (r *renderer) render(s paymentview.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stateChanged := s.State != r.lastState
	r.lastState = s.State

	switch s.State {
	case paymentview.StateLoading:
		if stateChanged {
			fmt.Fprintln(r.out, "Gerando código PIX...")
		}
	case paymentview.StateAwaiting:
		if stateChanged {
			fmt.Fprintf(r.out, "Pedido %s  Total R$ %.2f\n", s.OrderNumber, s.Amount)
			fmt.Fprintf(r.out, "PIX copia e cola:\n%s\n", s.Code)
			if s.QRCodeURL != "" {
				fmt.Fprintf(r.out, "QR Code: %s\n", s.QRCodeURL)
			}
		}
		fmt.Fprintf(r.out, "\rAguardando pagamento... expira em %s ", formatRemaining(s.Remaining))
	case paymentview.StateExpired:
		if stateChanged {
			fmt.Fprintln(r.out, "\nCódigo PIX expirado. Gere um novo código para continuar.")
		}
	case paymentview.StatePaid:
		if stateChanged {
			fmt.Fprintln(r.out, "\nPagamento confirmado!")
		}
	case paymentview.StateError:
		if stateChanged {
			fmt.Fprintf(r.out, "\nErro: %v\n", s.Err)
			if s.Retryable {
				fmt.Fprintln(r.out, "Tente novamente.")
			}
		}
	}
}

func formatRemaining(d time.Duration) string {
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
