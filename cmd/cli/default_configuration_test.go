package cli_test

import (
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/utf8guard/cmd/cli"
	"github.com/temirov/utf8guard/internal/utils"
	"github.com/temirov/utf8guard/internal/verify"
)

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) cli.ApplicationConfiguration {
	testingInstance.Helper()

	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	require.Equal(testingInstance, "yaml", configurationType)

	rawConfiguration := map[string]any{}
	require.NoError(testingInstance, yaml.Unmarshal(configurationData, &rawConfiguration))

	var configuration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{TagName: "mapstructure", Result: &configuration, ErrorUnused: true})
	require.NoError(testingInstance, decoderError)
	require.NoError(testingInstance, decoder.Decode(rawConfiguration))

	return configuration
}

func TestEmbeddedDefaultConfigurationMatchesCodeDefaults(t *testing.T) {
	configuration := decodeEmbeddedApplicationConfiguration(t)

	require.Equal(t, string(utils.LogLevelError), configuration.Common.LogLevel)
	require.Equal(t, string(utils.LogFormatConsole), configuration.Common.LogFormat)
	require.Equal(t, verify.DefaultCommandConfiguration(), configuration.Verify)
}

func TestEmbeddedDefaultConfigurationReturnsCopy(t *testing.T) {
	firstCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEmpty(t, firstCopy)
	firstCopy[0] = '#'

	secondCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(t, firstCopy[0], secondCopy[0])
}
