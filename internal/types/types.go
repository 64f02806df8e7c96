package types

// GraphQLRequest is the JSON body posted to the GraphQL endpoint
type GraphQLRequest struct {
	OperationName string                 `json:"operationName,omitempty"`
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLError is one entry of the "errors" array of a GraphQL response
type GraphQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// LoginData represents the data of the login mutation
type LoginData struct {
	Login MutationResult `json:"login"`
}

// CreateAccountData represents the data of the createAccount mutation
type CreateAccountData struct {
	CreateAccount MutationResult `json:"createAccount"`
}

// MutationResult is the shared {ok token error} shape returned by the auth mutations.
// createAccount never sets Token.
type MutationResult struct {
	OK    bool    `json:"ok"`
	Token *string `json:"token,omitempty"`
	Error *string `json:"error,omitempty"`
}

// LoginMutation logs a user in with email and password
const LoginMutation = `mutation login($email: String!, $password: String!) {
  login(email: $email, password: $password) {
    ok
    token
    error
  }
}`

// CreateAccountMutation registers a new user
const CreateAccountMutation = `mutation createAccount($email: String!, $username: String!, $password: String!) {
  createAccount(email: $email, username: $username, password: $password) {
    ok
    error
  }
}`
