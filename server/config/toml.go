package config

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"
)

// DefaultConfigTemplate defines the configuration template for the node.
const DefaultConfigTemplate = `# This is a TOML config file.
# For more information, see https://github.com/toml-lang/toml

# Logging level: "debug", "info", "warn", "error" or per module
# ("chain:debug,*:info").
log_level = "{{ .LogLevel }}"

###############################################################################
###                             Chain Configuration                         ###
###############################################################################

[chain]

# Database backend: goleveldb | memdb
db-backend = "{{ .Chain.DBBackend }}"

# Sealing interval. 0s seals a block as soon as a transaction enters the pool.
block-time = "{{ .Chain.BlockTime }}"

# YAML genesis file. Empty uses the development genesis.
genesis = "{{ .Chain.Genesis }}"

# Maximum number of pooled transactions.
pool-capacity = {{ .Chain.PoolCapacity }}

###############################################################################
###                           JSON RPC Configuration                        ###
###############################################################################

[json-rpc]

# Enable defines if the JSON-RPC server should be enabled.
enable = {{ .JSONRPC.Enable }}

# Address defines the JSON-RPC HTTP server address to bind to. WebSocket
# clients connect to the same address under /ws.
address = "{{ .JSONRPC.Address }}"

# API defines a list of JSON-RPC namespaces that should be enabled
# Example: "eth,net,web3"
api = "{{range $index, $elmt := .JSONRPC.API}}{{if $index}},{{$elmt}}{{else}}{{$elmt}}{{end}}{{end}}"

# EnableUnsafeCORS defines if CORS should be enabled (unsafe - use it at your own risk).
enable-unsafe-cors = {{ .JSONRPC.EnableUnsafeCORS }}

# HTTPTimeout is the read/write timeout of http json-rpc server.
http-timeout = "{{ .JSONRPC.HTTPTimeout }}"

# HTTPIdleTimeout is the idle timeout of http json-rpc server.
http-idle-timeout = "{{ .JSONRPC.HTTPIdleTimeout }}"

# MaxOpenConnections sets the maximum number of simultaneous connections
# for the server listener.
max-open-connections = {{ .JSONRPC.MaxOpenConnections }}

###############################################################################
###                             Keystore Configuration                      ###
###############################################################################

[keystore]

# Encrypted keystore directory, relative to the node home. Empty keeps the
# keys in memory.
dir = "{{ .Keystore.Dir }}"

# Passphrase shared by every key in the keystore.
passphrase = "{{ .Keystore.Passphrase }}"

# Load the well-known development keys (alith, baltathar, test).
dev-keys = {{ .Keystore.DevKeys }}
`

var configTemplate = template.Must(template.New("ethinkConfigFileTemplate").Parse(DefaultConfigTemplate))

// Render renders cfg with the default template.
func Render(cfg *Config) ([]byte, error) {
	var buffer bytes.Buffer
	if err := configTemplate.Execute(&buffer, cfg); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// WriteConfigFile renders cfg and writes it to configFilePath.
func WriteConfigFile(configFilePath string, cfg *Config) error {
	bz, err := Render(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFilePath), 0o750); err != nil {
		return err
	}
	return os.WriteFile(configFilePath, bz, 0o600)
}
