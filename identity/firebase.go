package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the public Identity Toolkit endpoint used by Firebase
// Authentication. Point it at the Auth emulator for local development.
const DefaultBaseURL = "https://identitytoolkit.googleapis.com"

const tracerName = "authscreen/identity"

// ── Wire types: Identity Toolkit v1 ──────────────────────────────────────────

// passwordRequest is the body of accounts:signUp and accounts:signInWithPassword.
type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// passwordResponse holds the fields of a successful reply that we log.
// Tokens are discarded: the screen keeps no session.
type passwordResponse struct {
	LocalID    string `json:"localId"`
	Email      string `json:"email"`
	Registered bool   `json:"registered"`
}

// errorResponse is the body of every non-2xx reply, e.g.
//
//	{"error":{"code":400,"message":"EMAIL_EXISTS","errors":[...]}}
//
// Some codes carry a detail after " : ", as in
// "WEAK_PASSWORD : Password should be at least 6 characters".
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FirebaseClient talks to the Identity Toolkit REST API.
// It is safe for concurrent use.
type FirebaseClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	tracer     trace.Tracer
}

// FirebaseOption customizes a FirebaseClient.
type FirebaseOption func(*FirebaseClient)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(base string) FirebaseOption {
	return func(c *FirebaseClient) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) FirebaseOption {
	return func(c *FirebaseClient) {
		c.httpClient = hc
	}
}

// NewFirebaseClient returns a client for the project owning apiKey.
// The default HTTP client times out after timeout and logs every request
// through LoggingTransport.
func NewFirebaseClient(apiKey string, timeout time.Duration, opts ...FirebaseOption) *FirebaseClient {
	c := &FirebaseClient{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: NewLoggingTransport(nil),
		},
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateAccount registers a new email/password account.
func (c *FirebaseClient) CreateAccount(ctx context.Context, email, password string) error {
	return c.passwordCall(ctx, "accounts:signUp", email, password)
}

// Authenticate signs in an existing email/password account.
func (c *FirebaseClient) Authenticate(ctx context.Context, email, password string) error {
	return c.passwordCall(ctx, "accounts:signInWithPassword", email, password)
}

// Ping checks that the Identity Toolkit host answers. Any response below 500
// counts as reachable; the API key is not validated.
func (c *FirebaseClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider not available at %s: %w", c.baseURL, err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("identity provider returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func (c *FirebaseClient) passwordCall(ctx context.Context, method, email, password string) (err error) {
	requestID := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, "identity."+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("identity.method", method),
			attribute.String("identity.request_id", requestID),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, errorCode(err))
		}
		span.End()
	}()

	body, err := json.Marshal(passwordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", method, err)
	}

	endpoint := c.baseURL + "/v1/" + method + "?" + url.Values{"key": {c.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("identity: %s: Falha -> %v", method, err)
		return &Error{Code: CodeNetwork, Message: descriptions[CodeNetwork], Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		log.Printf("identity: %s: Falha -> read body: %v", method, err)
		return &Error{Code: CodeNetwork, Message: descriptions[CodeNetwork], Cause: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var pr passwordResponse
		if err := json.Unmarshal(raw, &pr); err != nil {
			// The call succeeded; an unexpected body does not change that.
			log.Printf("identity: %s: Sucesso (unreadable body: %v)", method, err)
			return nil
		}
		span.SetAttributes(attribute.String("identity.local_id", pr.LocalID))
		log.Printf("identity: %s: Sucesso (uid=%s request=%s)", method, pr.LocalID, requestID)
		return nil
	}

	perr := parseErrorBody(resp.StatusCode, raw)
	log.Printf("identity: %s: Falha -> HTTP %d %s (request=%s)", method, resp.StatusCode, perr.Code, requestID)
	return perr
}

// parseErrorBody maps a non-2xx reply to an *Error. Bodies that are not the
// documented error envelope yield an Error without a message.
func parseErrorBody(status int, raw []byte) *Error {
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err != nil || er.Error.Message == "" {
		return &Error{
			Code:  fmt.Sprintf("HTTP_%d", status),
			Cause: fmt.Errorf("unexpected HTTP %d: %.120s", status, raw),
		}
	}

	code, detail, _ := strings.Cut(er.Error.Message, " : ")
	code = strings.TrimSpace(code)
	fallback := er.Error.Message
	if detail != "" {
		fallback = strings.TrimSpace(detail)
	}
	return NewError(code, fallback)
}

func errorCode(err error) string {
	var ie *Error
	if errors.As(err, &ie) && ie.Code != "" {
		return ie.Code
	}
	return err.Error()
}
