package shared

import (
	"fmt"
	"io/ioutil"
	"os"
)

const CredentialFilename = "client.cred"

const CredentialSize = 32

// LoadCredential reads the credential blob from the given file,
// generating a placeholder one first when the file does not exist.
func LoadCredential(filename string) ([]byte, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		if err := generateCredential(filename); err != nil {
			return nil, err
		}
	}
	cred, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if len(cred) != CredentialSize {
		return nil, fmt.Errorf("credential file %s holds %d bytes, want %d",
			filename, len(cred), CredentialSize)
	}
	return cred, nil
}

func generateCredential(filename string) error {
	// Sequential placeholder pattern, standing in for real key material
	cred := make([]byte, CredentialSize)
	for i := range cred {
		cred[i] = byte(i)
	}
	return ioutil.WriteFile(filename, cred, 0600)
}
