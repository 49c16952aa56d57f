package labsite

// ColabBaseURL opens GitHub-hosted notebooks in Google Colab.
const ColabBaseURL = "https://colab.research.google.com/github"

// ColabURL returns the Colab link for a notebook file in a GitHub
// repository. Parts are joined verbatim, without escaping.
func ColabURL(repoSlug, branch, contentPath, filename string) string {
	return ColabBaseURL + "/" + repoSlug + "/blob/" + branch + "/" + contentPath + "/" + filename
}
