package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "limiter",
			objectType:  "counter",
			identifier:  "127.0.0.1",
			paramsKey:   nil,
			expectedKey: "trivia:limiter:counter:127.0.0.1",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "limiter",
			objectType:  "counter",
			identifier:  "10.0.0.7",
			paramsKey:   []string{},
			expectedKey: "trivia:limiter:counter:10.0.0.7",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "limiter",
			objectType:  "counter",
			identifier:  "10.0.0.7",
			paramsKey:   []string{"POST", "questions"},
			expectedKey: "trivia:limiter:counter:10.0.0.7:POST_questions",
		},
		{
			name:        "wildcard identifier",
			serviceName: "limiter",
			objectType:  "counter",
			identifier:  "*",
			expectedKey: "trivia:limiter:counter:*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}
