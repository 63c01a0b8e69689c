package domain

// GlueDBFields is the fixed declaration order of the Glue database intake
// fields. Missing-field reporting and YAML rendering both follow this order.
var GlueDBFields = []string{
	"intake_id",
	"database_name",
	"database_s3_location",
	"database_description",
	"aws_account_id",
	"region",
	"data_construct",
	"data_env",
	"data_layer",
	"source_name",
	"enterprise_or_func_name",
	"enterprise_or_func_subgrp_name",
}

// S3BucketFields is the fixed declaration order of the S3 bucket intake fields.
var S3BucketFields = []string{
	"intake_id",
	"bucket_name",
	"bucket_description",
	"aws_account_id",
	"aws_region",
	"usage_type",
	"enterprise_or_func_name",
}

// GlueDBRecord is a completed Glue database intake.
type GlueDBRecord struct {
	IntakeID             string `json:"intake_id"`
	DatabaseName         string `json:"database_name"`
	DatabaseS3Location   string `json:"database_s3_location"`
	DatabaseDescription  string `json:"database_description"`
	AWSAccountID         string `json:"aws_account_id"`
	Region               string `json:"region"`
	DataConstruct        string `json:"data_construct"`
	DataEnv              string `json:"data_env"`
	DataLayer            string `json:"data_layer"`
	SourceName           string `json:"source_name"`
	EnterpriseOrFunc     string `json:"enterprise_or_func_name"`
	EnterpriseOrFuncSub  string `json:"enterprise_or_func_subgrp_name"`
}

// Values returns the record's values in GlueDBFields order.
func (r *GlueDBRecord) Values() []string {
	return []string{
		r.IntakeID,
		r.DatabaseName,
		r.DatabaseS3Location,
		r.DatabaseDescription,
		r.AWSAccountID,
		r.Region,
		r.DataConstruct,
		r.DataEnv,
		r.DataLayer,
		r.SourceName,
		r.EnterpriseOrFunc,
		r.EnterpriseOrFuncSub,
	}
}

// S3BucketRecord is a completed S3 bucket intake.
type S3BucketRecord struct {
	IntakeID          string `json:"intake_id"`
	BucketName        string `json:"bucket_name"`
	BucketDescription string `json:"bucket_description"`
	AWSAccountID      string `json:"aws_account_id"`
	AWSRegion         string `json:"aws_region"`
	UsageType         string `json:"usage_type"`
	EnterpriseOrFunc  string `json:"enterprise_or_func_name"`
}

// Values returns the record's values in S3BucketFields order.
func (r *S3BucketRecord) Values() []string {
	return []string{
		r.IntakeID,
		r.BucketName,
		r.BucketDescription,
		r.AWSAccountID,
		r.AWSRegion,
		r.UsageType,
		r.EnterpriseOrFunc,
	}
}
