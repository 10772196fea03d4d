package scenario

import "net/url"

// testPageHTML is a self-contained page with the elements the built-in
// checks target: #test-input, #test-textarea, #test-button, #test-output.
const testPageHTML = `<!DOCTYPE html>
<html>
<head>
    <title>LLM Browser Test Page</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .container { max-width: 600px; }
        input, textarea, button { margin: 10px 0; padding: 8px; }
        button { background: #007cba; color: white; border: none; cursor: pointer; }
        #test-output { background: #f0f0f0; padding: 10px; margin: 10px 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>LLM Browser Test Page</h1>
        <div>
            <label>Test Input:</label><br>
            <input type="text" id="test-input" placeholder="Enter text here">
        </div>
        <div>
            <label>Test Textarea:</label><br>
            <textarea id="test-textarea" placeholder="Enter longer text here"></textarea>
        </div>
        <div>
            <button id="test-button" onclick="handleClick()">Test Button</button>
        </div>
        <div>
            <label>Output:</label>
            <div id="test-output">Click the button to see output</div>
        </div>
    </div>
    <script>
        function handleClick() {
            const input = document.getElementById('test-input').value;
            const textarea = document.getElementById('test-textarea').value;
            const output = document.getElementById('test-output');
            output.textContent = ` + "`Input: ${input || 'empty'}, Textarea: ${textarea || 'empty'}`" + `;
        }
    </script>
</body>
</html>`

// TestPageHTML returns the raw markup of the test page
func TestPageHTML() string {
	return testPageHTML
}

// TestPageURL returns the test page as a data URI that can be pasted into
// the browser address bar.
func TestPageURL() string {
	return "data:text/html," + url.PathEscape(testPageHTML)
}
