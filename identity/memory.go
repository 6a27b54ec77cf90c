package identity

import (
	"context"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type memoryAccount struct {
	localID      string
	passwordHash []byte
}

// MemoryProvider keeps accounts in process memory. It answers with the
// same error codes as the Identity Toolkit so the screen behaves the same
// offline. Accounts are lost when the process exits.
type MemoryProvider struct {
	mu       sync.RWMutex
	accounts map[string]*memoryAccount
	cost     int
}

// NewMemoryProvider returns an empty provider hashing with bcrypt.DefaultCost.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		accounts: make(map[string]*memoryAccount),
		cost:     bcrypt.DefaultCost,
	}
}

// NewMemoryProviderWithCost is NewMemoryProvider with a custom bcrypt cost;
// tests use bcrypt.MinCost.
func NewMemoryProviderWithCost(cost int) *MemoryProvider {
	p := NewMemoryProvider()
	p.cost = cost
	return p
}

func (p *MemoryProvider) CreateAccount(ctx context.Context, email, password string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Code: CodeNetwork, Message: descriptions[CodeNetwork], Cause: err}
	}
	key := normalizeEmail(email)
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return NewError(CodeWeakPassword, "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return &Error{Code: CodeWeakPassword, Message: err.Error(), Cause: err}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, exists := p.accounts[key]; exists {
		return NewError(CodeEmailExists, "")
	}
	acct := &memoryAccount{localID: uuid.NewString(), passwordHash: hash}
	p.accounts[key] = acct
	log.Printf("identity: memory: created account uid=%s", acct.localID)
	return nil
}

// Authenticate reports INVALID_LOGIN_CREDENTIALS for both unknown emails and
// wrong passwords, as the Identity Toolkit does with enumeration protection.
func (p *MemoryProvider) Authenticate(ctx context.Context, email, password string) error {
	if err := ctx.Err(); err != nil {
		return &Error{Code: CodeNetwork, Message: descriptions[CodeNetwork], Cause: err}
	}

	p.mu.RLock()
	acct, ok := p.accounts[normalizeEmail(email)]
	p.mu.RUnlock()
	if !ok {
		return NewError(CodeInvalidCredentials, "")
	}
	if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(password)); err != nil {
		return NewError(CodeInvalidCredentials, "")
	}
	log.Printf("identity: memory: signed in uid=%s", acct.localID)
	return nil
}

// Ping always succeeds.
func (p *MemoryProvider) Ping(context.Context) error { return nil }

// Len returns the number of stored accounts.
func (p *MemoryProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.accounts)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
