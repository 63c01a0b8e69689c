package intake

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/saikrishna2003/automated-pr-chatbot/domain"
)

// Governance vocabularies. Region membership is advisory only (AWS adds
// regions faster than this list is updated), everything else is enforced.
var (
	ValidDataLayers = []string{"raw", "cln", "curated", "analytics"}
	ValidDataEnvs   = []string{"prd", "dev", "staging", "uat"}
	ValidUsageTypes = []string{"DataProduct", "Logging", "Archive", "Analytics", "Backup"}
	KnownRegions    = []string{"us-east-1", "us-west-2", "eu-west-1", "ap-southeast-1"}

	DatabaseNamePrefixes = []string{"minerva_", "cargill_", "data_"}
	BucketNamePrefixes   = []string{"minerva-", "cargill-", "data-"}
)

var (
	accountIDRe  = regexp.MustCompile(`^[0-9]{12}$`)
	bucketNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*[a-z0-9]$`)
	dbNameRe     = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// ValidateS3Location checks the s3:// prefix.
func ValidateS3Location(loc string) error {
	if !strings.HasPrefix(loc, "s3://") {
		return fmt.Errorf("s3 location %q must start with s3://", loc)
	}
	return nil
}

// ValidateAccountID checks for a 12-digit AWS account id.
func ValidateAccountID(id string) error {
	if !accountIDRe.MatchString(id) {
		return fmt.Errorf("aws account id %q must be 12 digits", id)
	}
	return nil
}

// ValidateDataLayer checks the data layer against the governance list.
func ValidateDataLayer(layer string) error {
	if !contains(ValidDataLayers, layer) {
		return fmt.Errorf("invalid data layer %q, valid options: %s", layer, strings.Join(ValidDataLayers, ", "))
	}
	return nil
}

// ValidateDataEnv checks the environment against the governance list.
func ValidateDataEnv(env string) error {
	if !contains(ValidDataEnvs, env) {
		return fmt.Errorf("invalid data environment %q, valid options: %s", env, strings.Join(ValidDataEnvs, ", "))
	}
	return nil
}

// ValidateUsageType checks a bucket usage type against the governance list.
func ValidateUsageType(usage string) error {
	if !contains(ValidUsageTypes, usage) {
		return fmt.Errorf("invalid usage type %q, valid options: %s", usage, strings.Join(ValidUsageTypes, ", "))
	}
	return nil
}

// KnownRegion reports whether the region is on the common list. Unknown
// regions are allowed but worth a warning.
func KnownRegion(region string) bool {
	return contains(KnownRegions, region)
}

// ValidateDatabaseName checks the Glue database naming convention.
func ValidateDatabaseName(name string) error {
	if !hasAnyPrefix(name, DatabaseNamePrefixes) {
		return fmt.Errorf("database name %q must start with one of: %s", name, strings.Join(DatabaseNamePrefixes, ", "))
	}
	if !dbNameRe.MatchString(name) {
		return fmt.Errorf("database name %q must be lowercase letters, numbers, underscores, and hyphens", name)
	}
	return nil
}

// ValidateBucketName checks the S3 bucket naming rules.
func ValidateBucketName(name string) error {
	if len(name) < 3 || len(name) > 63 {
		return fmt.Errorf("bucket name must be between 3 and 63 characters, got %d", len(name))
	}
	if strings.Contains(name, "_") {
		return fmt.Errorf("bucket name %q must use hyphens, not underscores", name)
	}
	if !bucketNameRe.MatchString(name) {
		return fmt.Errorf("bucket name %q must be lowercase letters, numbers, and hyphens, starting and ending with a letter or number", name)
	}
	if !hasAnyPrefix(name, BucketNamePrefixes) {
		return fmt.Errorf("bucket name %q must start with one of: %s", name, strings.Join(BucketNamePrefixes, ", "))
	}
	return nil
}

// ValidateGlueRecord applies the shape rules to a complete record. The
// governance vocabulary (layers, envs, name prefixes) is owned by the
// policy engine and not re-checked here.
func ValidateGlueRecord(r *domain.GlueDBRecord) error {
	if err := ValidateS3Location(r.DatabaseS3Location); err != nil {
		return err
	}
	return ValidateAccountID(r.AWSAccountID)
}

// ValidateS3Record applies the governance rules to a complete record.
func ValidateS3Record(r *domain.S3BucketRecord) error {
	if err := ValidateBucketName(r.BucketName); err != nil {
		return err
	}
	if err := ValidateAccountID(r.AWSAccountID); err != nil {
		return err
	}
	return ValidateUsageType(r.UsageType)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
