package intake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saikrishna2003/automated-pr-chatbot/domain"
)

func completeValues() map[string]string {
	return map[string]string{
		"intake_id":                      "M0000562",
		"database_name":                  "minerva_dev_src_corp_gtc_cdp_sap_gtc_prd_raw_db",
		"database_s3_location":           "s3://minerva-dev-raw/corp/gtc",
		"database_description":           "SAP GTC raw layer database",
		"aws_account_id":                 "123456789012",
		"region":                         "us-east-1",
		"data_construct":                 "src",
		"data_env":                       "dev",
		"data_layer":                     "raw",
		"source_name":                    "sap_gtc",
		"enterprise_or_func_name":        "CORP",
		"enterprise_or_func_subgrp_name": "GTC",
	}
}

func TestCompleteOnlyWhenAllFieldsSet(t *testing.T) {
	full := completeValues()

	// Leaving out any single field keeps the state incomplete.
	for _, omit := range domain.GlueDBFields {
		s := NewState()
		for f, v := range full {
			if f == omit {
				continue
			}
			require.NoError(t, s.Record(f, v))
		}
		assert.False(t, s.Complete(), "state should be incomplete without %s", omit)
		assert.Equal(t, []string{omit}, s.Missing())
	}

	s := NewState()
	for f, v := range full {
		require.NoError(t, s.Record(f, v))
	}
	assert.True(t, s.Complete())
	assert.Empty(t, s.Missing())
}

func TestEmptyValueCountsAsMissing(t *testing.T) {
	s := NewState()
	for f, v := range completeValues() {
		require.NoError(t, s.Record(f, v))
	}
	require.NoError(t, s.Record("region", ""))
	assert.False(t, s.Complete())
	assert.Equal(t, []string{"region"}, s.Missing())
}

func TestMissingFieldsFixedOrder(t *testing.T) {
	s := NewState()
	// Record a few answers deliberately out of declaration order.
	require.NoError(t, s.Record("data_layer", "raw"))
	require.NoError(t, s.Record("intake_id", "M0000562"))
	require.NoError(t, s.Record("source_name", "sap_gtc"))

	want := []string{
		"database_name",
		"database_s3_location",
		"database_description",
		"aws_account_id",
		"region",
		"data_construct",
		"data_env",
		"enterprise_or_func_name",
		"enterprise_or_func_subgrp_name",
	}
	assert.Equal(t, want, s.Missing())
}

func TestRecordOverwrites(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Record("region", "us-east-1"))
	require.NoError(t, s.Record("region", "us-west-2"))
	assert.Equal(t, "us-west-2", s.Values()["region"])
}

func TestRecordUnknownField(t *testing.T) {
	s := NewState()
	err := s.Record("favorite_color", "blue")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestFromMapDropsUnknownKeys(t *testing.T) {
	s := FromMap(domain.GlueDBFields, map[string]string{
		"intake_id": "M0000562",
		"stray_key": "ignored",
	})
	assert.Equal(t, map[string]string{"intake_id": "M0000562"}, s.Values())
}

func TestGlueRecord(t *testing.T) {
	s := NewState()
	_, err := GlueRecord(s)
	assert.True(t, errors.Is(err, ErrIncomplete))

	for f, v := range completeValues() {
		require.NoError(t, s.Record(f, v))
	}
	record, err := GlueRecord(s)
	require.NoError(t, err)
	assert.Equal(t, "M0000562", record.IntakeID)
	assert.Equal(t, "minerva_dev_src_corp_gtc_cdp_sap_gtc_prd_raw_db", record.DatabaseName)
	assert.Equal(t, "GTC", record.EnterpriseOrFuncSub)
}

func TestS3Record(t *testing.T) {
	s := NewStateFor(domain.S3BucketFields)
	require.NoError(t, s.Record("intake_id", "M0000563"))
	require.NoError(t, s.Record("bucket_name", "minerva-sales-analytics-prd"))
	require.NoError(t, s.Record("bucket_description", "Sales analytics data"))
	require.NoError(t, s.Record("aws_account_id", "123456789012"))
	require.NoError(t, s.Record("aws_region", "us-east-1"))
	require.NoError(t, s.Record("usage_type", "DataProduct"))
	require.NoError(t, s.Record("enterprise_or_func_name", "FOOD"))

	record, err := S3Record(s)
	require.NoError(t, err)
	assert.Equal(t, "minerva-sales-analytics-prd", record.BucketName)
}
