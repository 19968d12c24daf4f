package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-audience token audience name
//	-token-expires-minutes access token lifetime in minutes
//	-refresh-token-duration refresh token lifetime (e.g., "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-server-url client: base URL of the API server
//	-session-db client: path of the local session database
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenAudience string
	var tokenExpiresMinutes string
	var refreshTokenDuration time.Duration
	var requestTimeout time.Duration
	var clientServerURL string
	var clientSessionDB string

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Var(&serverAddress, "a", "Net address host:port")
	flags.StringVar(&databaseDSN, "d", "", "Database DSN")
	flags.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flags.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flags.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flags.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flags.StringVar(&tokenAudience, "token-audience", "", "Token audience")
	flags.StringVar(&tokenExpiresMinutes, "token-expires-minutes", "", "Access token lifetime in minutes")
	flags.DurationVar(&refreshTokenDuration, "refresh-token-duration", 0, "Refresh token lifetime (e.g., 168h)")
	flags.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flags.StringVar(&clientServerURL, "server-url", "", "Client: API server base URL")
	flags.StringVar(&clientSessionDB, "session-db", "", "Client: local session database path")

	_ = flags.Parse(os.Args[1:])

	return &StructuredConfig{
		Auth: Auth{
			TokenSignKey:          tokenSignKey,
			TokenIssuer:           tokenIssuer,
			TokenAudience:         tokenAudience,
			TokenExpiresInMinutes: tokenExpiresMinutes,
			RefreshTokenDuration:  refreshTokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Client: Client{
			ServerURL:      clientServerURL,
			SessionDBPath:  clientSessionDB,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string so that the
// merge step falls through to the next configuration source.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost", and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port

	return nil
}
