package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	conf, err := Load("testdata/config.yml")
	require.NoError(t, err)

	assert.Equal(t, ModeDemo, conf.Client.Mode)
	assert.Equal(t, "http://localhost:5000/api/generate-podcast", conf.Client.Endpoint)
	assert.Equal(t, 30*time.Second, conf.Client.Timeout)
	assert.Equal(t, "secret-token", conf.Client.Token)
	assert.Equal(t, "reader@example.com", conf.Client.User)
	assert.Empty(t, conf.Client.DemoAudioURL)

	assert.Equal(t, "0.0.0.0:5000", conf.Service.Listen)
	assert.Equal(t, int64(1048576), conf.Service.MaxUploadSize)
	assert.Equal(t, 500, conf.Service.SummaryMaxChars)
	assert.Equal(t, 10, conf.Service.RateLimit)
	assert.Equal(t, "http://localhost:5173", conf.Service.AllowedOrigin)
	assert.Equal(t, "var/summaries.bdb", conf.Cache.DB)

	assert.Equal(t, Speech{Enabled: true, Region: "eu-west-1", Voice: "Matthew", Engine: "standard", Language: "en-US"}, conf.Speech)

	assert.True(t, conf.CloudStorage.Archive)
	assert.Equal(t, conf.CloudStorage.EndPointURL, "storage_url")
	assert.Equal(t, conf.CloudStorage.Bucket, "bucket_name")
	assert.Equal(t, conf.CloudStorage.Region, "region-us")
	assert.Equal(t, conf.CloudStorage.Secrets.Key, "123123123")
	assert.Equal(t, conf.CloudStorage.Secrets.Secret, "abc123123123xyz")
}

func TestLoadPartialAppliesDefaults(t *testing.T) {
	conf, err := Load("testdata/partial.yml")
	require.NoError(t, err)

	assert.Equal(t, ModeLocal, conf.Client.Mode)
	assert.Equal(t, "http://127.0.0.1:5000/api/generate-podcast", conf.Client.Endpoint)
	assert.Equal(t, 2*time.Minute, conf.Client.Timeout)
	assert.Equal(t, "127.0.0.1:5000", conf.Service.Listen)
	assert.Equal(t, 2000, conf.Service.SummaryMaxChars)
	assert.False(t, conf.CloudStorage.Archive)
	assert.Equal(t, Speech{Region: "us-east-1", Voice: "Joanna", Engine: "neural"}, conf.Speech)
}

func TestLoadConfigNotFound(t *testing.T) {
	conf, err := Load("/tmp/test-bestow-nautch-toss-fritter-pygmy-unrest.yml")
	assert.Nil(t, conf)
	assert.EqualError(t, err, "open /tmp/test-bestow-nautch-toss-fritter-pygmy-unrest.yml: no such file or directory")
}
