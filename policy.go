package bucketctl

import (
	"encoding/json"
	"fmt"
)

// Policy is a named bucket access level. Document expands a level into
// the S3 policy JSON that grants it to anonymous users.
type Policy string

const (
	PolicyNone      Policy = "NONE"
	PolicyGetOnly   Policy = "GET_ONLY"
	PolicyReadOnly  Policy = "READ_ONLY"
	PolicyWriteOnly Policy = "WRITE_ONLY"
	PolicyReadWrite Policy = "READ_WRITE"
)

func Policies() []Policy {
	return []Policy{PolicyNone, PolicyGetOnly, PolicyReadOnly, PolicyWriteOnly, PolicyReadWrite}
}

func ParsePolicy(value string) (Policy, error) {
	for _, policy := range Policies() {
		if value == string(policy) {
			return policy, nil
		}
	}
	return "", fmt.Errorf("invalid policy: %q", value)
}

func (t Policy) String() string {
	return string(t)
}

type statement struct {
	Effect    string            `json:"Effect"`
	Principal map[string]string `json:"Principal"`
	Action    []string          `json:"Action"`
	Resource  []string          `json:"Resource"`
}

type document struct {
	Version   string      `json:"Version"`
	Statement []statement `json:"Statement"`
}

func allow(actions []string, resource string) statement {
	return statement{
		Effect:    "Allow",
		Principal: map[string]string{"AWS": "*"},
		Action:    actions,
		Resource:  []string{resource},
	}
}

func (t Policy) statements(bucket string) ([]statement, error) {
	bucketARN := fmt.Sprintf("arn:aws:s3:::%s", bucket)
	objectARN := fmt.Sprintf("arn:aws:s3:::%s/*", bucket)

	switch t {
	case PolicyNone:
		return []statement{}, nil
	case PolicyGetOnly:
		return []statement{
			allow([]string{"s3:GetObject"}, objectARN),
		}, nil
	case PolicyReadOnly:
		return []statement{
			allow([]string{"s3:GetBucketLocation"}, bucketARN),
			allow([]string{"s3:ListBucket"}, bucketARN),
			allow([]string{"s3:GetObject"}, objectARN),
		}, nil
	case PolicyWriteOnly:
		return []statement{
			allow([]string{"s3:GetBucketLocation"}, bucketARN),
			allow([]string{"s3:ListBucketMultipartUploads"}, bucketARN),
			allow([]string{
				"s3:AbortMultipartUpload",
				"s3:DeleteObject",
				"s3:ListMultipartUploadParts",
				"s3:PutObject",
			}, objectARN),
		}, nil
	case PolicyReadWrite:
		read, _ := PolicyReadOnly.statements(bucket)
		write, _ := PolicyWriteOnly.statements(bucket)
		merged := make([]statement, 0, len(read)+len(write))
		merged = append(merged, read...)
		for _, st := range write {
			if st.Action[0] == "s3:GetBucketLocation" {
				continue
			}
			merged = append(merged, st)
		}
		return merged, nil
	default:
		return nil, fmt.Errorf("invalid policy: %q", string(t))
	}
}

// Document returns the policy as a JSON-encoded S3 policy document for
// the given bucket.
func (t Policy) Document(bucket string) (string, error) {
	stmts, err := t.statements(bucket)
	if err != nil {
		return "", err
	}
	doc := document{Version: "2012-10-17", Statement: stmts}
	bs, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}
